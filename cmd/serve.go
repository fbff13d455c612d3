package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/config"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/server"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/token"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/ui"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the connection-details endpoint",
	Long: `Serve GET /api/connection-details?room=<room-id>, issuing a LiveKit access
token for a fresh participant identity.

Requires LIVEKIT_API_KEY and LIVEKIT_API_SECRET.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (env: WELLNESS_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, err := config.Load(config.Options{Addr: flagServeAddr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasTokenCredentials() {
		return fmt.Errorf("issue tokens: %w (set LIVEKIT_API_KEY and LIVEKIT_API_SECRET)", token.ErrNotConfigured)
	}
	if cfg.ServerURL == "" {
		ui.PrintWarning("LIVEKIT_URL is not set; clients must configure the server URL themselves")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	issuer := token.NewIssuer(cfg.APIKey, cfg.APISecret, cfg.TokenTTL, clockwork.NewRealClock())
	ui.PrintInfo(fmt.Sprintf("Serving connection details on %s", cfg.Addr))
	return server.New(issuer, cfg.ServerURL).ListenAndServe(ctx, cfg.Addr)
}
