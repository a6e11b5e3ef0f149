package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"componentdiff/internal/application/commands"
)

var applySelected bool

var applyCmd = &cobra.Command{
	Use:   "apply <type> [file...]",
	Short: "Replace a component with its default",
	Long: `Replace the first instance of a component type in each file with the
default. The first time a file is modified a <file>.backup copy is made.

With --selected the corpus is compared first and every file below the
threshold is updated.

Examples:
  componentdiff-cli apply rates jobs/pocket.xml jobs/face.xml
  componentdiff-cli apply wing --selected --threshold 95`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := componentType(args[0])
		targets := args[1:]

		if applySelected {
			compared, err := newCompare(cmd, t).Execute(cmd.Context())
			if err != nil {
				return err
			}
			targets = append(targets, commands.SelectedTargets(compared.CompareReport)...)
		}
		if len(targets) == 0 {
			fmt.Println("No files to apply to")
			return nil
		}

		path := defaultPathFor(t)
		if compareDefault != "" {
			path = compareDefault
		}
		result, err := commands.NewApplyBatchCommand(docs, logger, t, path, targets).Execute(cmd.Context())
		if err != nil {
			return err
		}

		renderDiagnostics(cmd.ErrOrStderr(), "failed", result.Failures)
		fmt.Println(result.Message)
		if len(result.Failures) > 0 {
			return fmt.Errorf("%d of %d files failed", len(result.Failures), result.Attempted)
		}
		return nil
	},
}

func init() {
	addCompareFlags(applyCmd)
	applyCmd.Flags().BoolVarP(&applySelected, "selected", "s", false, "apply to every corpus file below the threshold")
	rootCmd.AddCommand(applyCmd)
}
