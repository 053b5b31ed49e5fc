package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordris/internal/config"
	"github.com/vovakirdan/wordris/internal/multiplayer"
	"github.com/vovakirdan/wordris/internal/relay"
	"github.com/vovakirdan/wordris/internal/storage"
)

var flagRelayAddr string

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Start the websocket race relay",
	Long: `Start an HTTP server that pairs racers over websockets and serves
high scores as JSON.

Endpoints:
  GET /ws?name=<player>   - Race matchmaking (websocket)
  GET /health             - Liveness check
  GET /scores/<game>      - Top scores and most matched words
  GET /races              - Recent race results

Examples:
  wordris relay
  wordris relay --addr :9000`,
	Run: runRelay,
}

func init() {
	relayCmd.Flags().StringVar(&flagRelayAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runRelay(cmd *cobra.Command, _ []string) {
	applyEnv(cmd, "addr", &flagRelayAddr, config.EnvRelayAddr)
	logger := newLogger("wordris-relay")

	sessions := multiplayer.NewSessionRegistry()
	mm := multiplayer.NewMatchmaker(multiplayer.DefaultMatchmakerConfig(), sessions)

	var scores relay.ScoreSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		mm.SetResultSaver(store)
		scores = store
	}

	mm.Start()
	defer mm.Stop()

	srv := relay.New(mm, sessions, scores, logger)
	logger.Info("relay listening", "address", flagRelayAddr)
	if err := srv.Start(flagRelayAddr); err != nil {
		logger.Error("relay stopped", "error", err)
		os.Exit(1)
	}
}
