package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordris/internal/config"
	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/platform/tui"
	"github.com/vovakirdan/wordris/internal/registry"
	"github.com/vovakirdan/wordris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play Wordris",
	Long: `Without a pack, plays the campaign through every pack in order.
With a pack ID, plays endless mode on that pack.

Controls:
  Left/Right, A/D, H/L  - Move the falling letter
  Down/Space            - Drop it to the bottom
  P                     - Pause
  R                     - Restart (after game over)
  Esc                   - Back (when paused or over)
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Slow start, few distractor letters
  normal - Default speed ramp
  hard   - Fast start, more distractors
  fixed  - No speed ramp, stays at config's initial level

Examples:
  wordris play
  wordris play animals
  wordris play --difficulty hard
  wordris play colors --config ./my-wordris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// configureGames passes the command line settings to the game package.
func configureGames() {
	if flagConfig == "" {
		flagConfig = config.GetEnv(config.EnvConfig, "")
	}
	wordris.SetConfigPath(flagConfig)
	wordris.SetDifficultyPreset(flagDifficulty)
	wordris.SetPackDir(flagPackDir)
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	configureGames()

	gameID := "wordris"
	if len(args) == 1 {
		if _, err := words.Find(flagPackDir, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'wordris list' to see available packs.")
			os.Exit(1)
		}
		wordris.SetPack(args[0])
		gameID = "wordris_endless"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
