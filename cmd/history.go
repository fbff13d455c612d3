package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/config"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/journal"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/ui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List received check-in summaries",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Options{})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		store, err := journal.Open(cfg.JournalPath())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.HistoryTable(entries))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
