package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"componentdiff/internal/application/commands"
)

var adoptCmd = &cobra.Command{
	Use:   "adopt <type> <file>",
	Short: "Use one file's component as the default",
	Long: `Copy the first instance of a component type in one file to
<defaults>/<type>_default.xml, overwriting any existing default.

Example:
  componentdiff-cli adopt rates jobs/reference.xml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewAdoptDefaultCommand(docs, logger, componentType(args[0]), args[1], cfg.DefaultsDir).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(matchStyle.Render(result.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adoptCmd)
}
