package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"componentdiff/internal/adapters/report"
	"componentdiff/internal/application/commands"
)

var (
	analyzeOutDir string
	analyzeStdout bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <type>",
	Short: "Report how a component is used across the corpus",
	Long: `Write a text report with the element frequency and the structure of every
instance of a component type, to component_report_<type>.txt.

Examples:
  componentdiff-cli analyze rates
  componentdiff-cli analyze tool --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := componentType(args[0])
		result, err := commands.NewAnalyzeComponentCommand(docs, logger, t, cfg.CorpusDir).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if analyzeStdout {
			return report.WriteAnalysis(os.Stdout, result.Analysis, time.Now())
		}

		path := filepath.Join(analyzeOutDir, report.AnalysisFileName(t))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := report.WriteAnalysis(f, result.Analysis, time.Now()); err != nil {
			f.Close()
			return fmt.Errorf("failed to write report: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Println(result.Message)
		fmt.Println(mutedStyle.Render("report " + path))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out", "o", ".", "directory for the report file")
	analyzeCmd.Flags().BoolVar(&analyzeStdout, "stdout", false, "print the report instead of writing a file")
	rootCmd.AddCommand(analyzeCmd)
}
