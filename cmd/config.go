package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/appconfig"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show branding and feature settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appconfig.Default()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid app config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.ConfigTable(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
