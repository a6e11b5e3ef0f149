package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"componentdiff/internal/adapters/editor"
	"componentdiff/internal/application/commands"
)

var editCmd = &cobra.Command{
	Use:   "edit-default <type>",
	Short: "Open a default document in $EDITOR",
	Long: `Open <defaults>/<type>_default.xml in $VISUAL or $EDITOR. The default must
exist; create it with synthesize first.

Example:
  EDITOR=nvim componentdiff-cli edit-default rates`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewEditDefaultCommand(editor.NewOpener(), componentType(args[0]), cfg.DefaultsDir).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
