package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"componentdiff/internal/application/commands"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [type]",
	Short: "Build defaults from the corpus",
	Long: `Collect every instance of a component type across the corpus and write a
synthesized default to <defaults>/<type>_default.xml, overwriting any
existing one. Without a type every known and configured type is built.

Examples:
  componentdiff-cli synthesize rates
  componentdiff-cli synthesize --corpus ./jobs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			result, err := commands.NewSynthesizeDefaultCommand(docs, registry, logger,
				componentType(args[0]), cfg.CorpusDir, cfg.DefaultsDir).Execute(cmd.Context())
			if err != nil {
				return err
			}
			renderDiagnostics(cmd.ErrOrStderr(), "skipped", result.Skipped)
			fmt.Println(matchStyle.Render(result.Message))
			return nil
		}

		result, err := commands.NewSynthesizeAllCommand(docs, registry, logger, cfg.CorpusDir, cfg.DefaultsDir).Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderDiagnostics(cmd.ErrOrStderr(), "skipped", result.Skipped)
		for _, w := range result.Written {
			fmt.Println(matchStyle.Render(w.Message))
		}
		renderDiagnostics(cmd.ErrOrStderr(), "failed", result.Failed)
		for _, t := range result.Empty {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("no %s instances", t)))
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)
}
