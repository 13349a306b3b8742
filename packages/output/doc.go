// Package output holds the reporting extensions of a run: the console
// writer, the BDD XML result writer, the syslog writer and the step
// timing recorder.
//
// Extensions implement runner.Extension and are handed to the engine as
// an explicit list, so the active set for a run is visible at the call
// site and easy to stub in tests.
package output
