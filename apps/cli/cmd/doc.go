// Package cmd implements the specrun CLI commands using Cobra.
//
// Available commands:
//   - run: Discover, bind and execute feature files
//   - validate: Check feature file syntax without executing
//   - list: Display features and scenarios with their run ids
//   - version: Show specrun version information
//
// The run command carries the reporting flags (--bdd-xml, --no-ansi,
// --syslog, --timings) and a watch mode for development workflows.
package cmd
