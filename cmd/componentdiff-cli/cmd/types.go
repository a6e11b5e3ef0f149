package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"componentdiff/internal/application/commands"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List component types and their defaults",
	Long: `List the known component types, those configured in the config file and
those with a default document on disk.

Example:
  componentdiff-cli types`,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := commands.NewListTypesCommand(docs, registry, cfg.DefaultsDir).Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderTypes(os.Stdout, infos)
		return nil
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "List default documents on disk",
	Long: `List the <type>_default.xml files in the defaults directory.

Example:
  componentdiff-cli defaults --defaults ./default_components`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := docs.ListDefaults(cfg.DefaultsDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Printf("No defaults in %s\n", cfg.DefaultsDir)
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(defaultsCmd)
}
