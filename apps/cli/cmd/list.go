package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/plan"
)

var listCmd = &cobra.Command{
	Use:   "list <features>...",
	Short: "List features and scenarios with their run ids",
	Long: `List the features and scenarios the given paths would run,
with the ids the run would assign to them.

Examples:
  specrun list login.feature
  specrun list ./features/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := discover.FeatureFiles(args)
	if err != nil {
		return err
	}

	features, total, err := plan.Build(files, plan.FeatureParser{})
	if err != nil {
		return err
	}

	for _, feature := range features {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFeature %d: %s (%s)\n", feature.ID, feature.Name, feature.Path)
		for _, scenario := range feature.Scenarios {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", scenario.ID, scenario.Name)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d scenarios in %d features\n", total, len(features))

	return nil
}
