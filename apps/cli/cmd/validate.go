package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate <features>...",
	Short: "Validate feature files for syntax errors",
	Long: `Validate feature files without binding or executing them.

Examples:
  specrun validate login.feature
  specrun validate ./features/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := discover.FeatureFiles(args)
	if err != nil {
		return err
	}

	var firstErr error
	for i, file := range files {
		_, _, err := parser.NewParser(file, i+1, 0).Parse()
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
	}

	return firstErr
}
