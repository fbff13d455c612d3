package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/ui"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wellness",
	Short: "Voice wellness check-in client for LiveKit rooms",
	Long: `wellness joins a real-time voice room where a wellness companion runs your
daily check-in. The companion's summary of the conversation appears in the
terminal once it is ready.

It also serves the local connection-details endpoint that issues room tokens.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
