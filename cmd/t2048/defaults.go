package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default game config",
	Long: `Print the built-in game config as YAML. Save it, edit the board or
animation values, and pass it back with --config.

Examples:
  t2048 defaults > my-2048.yaml
  t2048 play custom --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
