package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"componentdiff/internal/application/commands"
	"componentdiff/internal/domain"
)

var (
	compareThreshold float64
	compareWorkers   int
	compareDefault   string
	compareNoHistory bool

	diffAll bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <type>",
	Short: "Rank corpus files by similarity to the default",
	Long: `Compare the first instance of a component type in every XML file of the
corpus against its default document. Files are ranked by similarity;
'*' marks files below the threshold, which apply --selected will target.

The run is recorded in the history database unless --no-history is set.

Examples:
  componentdiff-cli compare rates
  componentdiff-cli compare wing --threshold 95 --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compare := newCompare(cmd, componentType(args[0]))
		if !compareNoHistory {
			if h := openHistory(); h != nil {
				defer h.Close()
				compare.WithHistory(h)
			}
		}

		result, err := compare.Execute(cmd.Context())
		if err != nil {
			return err
		}

		renderCompare(os.Stdout, result.CompareReport)
		if result.RunID != "" {
			fmt.Println(mutedStyle.Render("run " + result.RunID))
		}
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <type> <file>",
	Short: "Show per-field differences of one file",
	Long: `Show how the first instance of a component in one file differs from the
default, field by field.

Examples:
  componentdiff-cli diff rates jobs/pocket.xml
  componentdiff-cli diff tool jobs/pocket.xml --all`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := componentType(args[0])
		diff := commands.NewDiffFileCommand(docs, t, defaultPathFor(t), args[1])
		diff.Threshold = cfg.Threshold

		result, err := diff.Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderDiff(os.Stdout, result.Result, diffAll)
		return nil
	},
}

// newCompare builds a compare command from the config and the flags the user set
func newCompare(cmd *cobra.Command, t domain.ComponentType) *commands.CompareCorpusCommand {
	path := defaultPathFor(t)
	if compareDefault != "" {
		path = compareDefault
	}

	c := commands.NewCompareCorpusCommand(docs, logger, t, path, cfg.CorpusDir)
	c.Threshold = cfg.Threshold
	c.Workers = cfg.Workers
	if cmd.Flags().Changed("threshold") {
		c.Threshold = compareThreshold
	}
	if cmd.Flags().Changed("workers") {
		c.Workers = compareWorkers
	}
	return c
}

func defaultPathFor(t domain.ComponentType) string {
	return domain.DefaultPath(cfg.DefaultsDir, t)
}

func addCompareFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&compareThreshold, "threshold", "t", domain.SelectionThreshold, "select files below this similarity percentage")
	cmd.Flags().IntVarP(&compareWorkers, "workers", "w", 1, "files compared in parallel")
	cmd.Flags().StringVar(&compareDefault, "default", "", "default document (defaults to <defaults>/<type>_default.xml)")
}

func init() {
	addCompareFlags(compareCmd)
	compareCmd.Flags().BoolVar(&compareNoHistory, "no-history", false, "do not record the run")
	diffCmd.Flags().BoolVarP(&diffAll, "all", "a", false, "also list identical fields")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(diffCmd)
}
