package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/appconfig"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/config"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/connection"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/journal"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/logging"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/room"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/room/livekit"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/ui"
)

var (
	flagJoinAPI       string
	flagJoinServerURL string
	flagJoinNoHistory bool
)

var joinCmd = &cobra.Command{
	Use:     "join <room-id>",
	Aliases: []string{"j"},
	Short:   "Join a check-in room",
	Long: `Join a check-in room, enable the microphone and wait for the wellness summary.

Examples:
  wellness join daily-checkin
  wellness join daily-checkin --api http://localhost:3000
  wellness join daily-checkin --url wss://my-project.livekit.cloud`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(args[0])
	},
}

func init() {
	joinCmd.Flags().StringVar(&flagJoinAPI, "api", "", "Base URL of the connection-details endpoint (env: WELLNESS_API_URL)")
	joinCmd.Flags().StringVar(&flagJoinServerURL, "url", "", "LiveKit server URL (env: LIVEKIT_URL)")
	joinCmd.Flags().BoolVar(&flagJoinNoHistory, "no-history", false, "Do not record received summaries")
	rootCmd.AddCommand(joinCmd)
}

func joinRoom(roomID string) error {
	cfg, err := config.Load(config.Options{
		APIURL:    flagJoinAPI,
		ServerURL: flagJoinServerURL,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	restore, err := logging.RedirectToFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer restore()

	var recorder ui.Recorder
	if !flagJoinNoHistory {
		store, err := journal.Open(cfg.JournalPath())
		if err != nil {
			slog.Warn("check-in history disabled", "error", err)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	joiner := room.NewJoiner(
		connection.NewClient(cfg.APIURL),
		livekit.Dialer(),
		cfg.ServerURL,
	).WithLogger(slog.Default().With("component", "join"))

	model := ui.NewRoomModel(roomID, appconfig.Default(), joiner, recorder)
	return ui.RunRoom(model)
}
