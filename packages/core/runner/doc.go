// Package runner executes a finished run plan: scenarios in identifier
// order (or filter order), steps through their bound shell commands.
//
// It provides:
//   - Sequential scenario execution honoring the scenario filter,
//     shuffle, dry-run and early-exit settings
//   - Before/after scenario hooks from the hook registry
//   - Step commands run through the shell with capture groups, profile
//     and marker exported in the environment
//   - Optional JSON assertions on step output
//   - An extension event stream for reporting plugins
package runner
