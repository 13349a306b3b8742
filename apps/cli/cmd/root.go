package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "specrun",
	Short: "Behavior-driven tests from plain feature files.",
	Long: `specrun is a behavior-driven test runner. Describe behavior in
plain .feature files, implement the steps as shell commands in
*.steps.yaml definition files, and specrun binds and runs them.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the process error boundary: every fatal condition from a
// command surfaces here and is mapped to a diagnostic line and an exit
// code. --with-traceback opts into the full error chain.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		printDiagnostic(err)
		os.Exit(exitCodeFor(err))
	}
}

func printDiagnostic(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if !withTracebackFlag {
		return
	}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(os.Stderr, "  caused by: %v\n", cause)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}
