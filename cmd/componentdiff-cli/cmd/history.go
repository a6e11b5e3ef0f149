package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"componentdiff/internal/adapters/report"
	"componentdiff/internal/adapters/sqlite"
	"componentdiff/internal/application/commands"
)

var (
	historyType  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded comparison runs",
	Long: `List recorded comparison runs, newest first. With a run ID, show the
per-file rows of that run.

Examples:
  componentdiff-cli history
  componentdiff-cli history --type rates --limit 5
  componentdiff-cli history 3f0c2a9e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h := sqlite.NewHistory()
		if err := h.Open(cfg.HistoryDB); err != nil {
			return err
		}
		defer h.Close()

		if len(args) == 1 {
			rows, err := commands.NewShowRunCommand(h, args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return report.WriteRunResults(os.Stdout, rows)
		}

		result, err := commands.NewListRunsCommand(h, componentType(historyType), historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(result.Runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}
		return report.WriteRuns(os.Stdout, result.Runs)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyType, "type", "", "only list runs of this component type")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of runs (default 20)")
	rootCmd.AddCommand(historyCmd)
}
