package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"componentdiff/internal/adapters/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <type>",
	Short: "Re-run the comparison when corpus files change",
	Long: `Compare the corpus once, then watch the corpus directory and compare again
whenever an XML file is created, written, removed or renamed. Bursts of
changes are folded into one run. Stop with Ctrl-C.

Example:
  componentdiff-cli watch rates --debounce 1s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compare := newCompare(cmd, componentType(args[0]))

		run := func(ctx context.Context) error {
			result, err := compare.Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(mutedStyle.Render(time.Now().Format("15:04:05")))
			renderCompare(os.Stdout, result.CompareReport)
			return nil
		}

		if err := run(cmd.Context()); err != nil {
			return err
		}
		return watcher.New(cfg.CorpusDir, watchDebounce, logger).Run(cmd.Context(), run)
	},
}

func init() {
	addCompareFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-running")
	rootCmd.AddCommand(watchCmd)
}
