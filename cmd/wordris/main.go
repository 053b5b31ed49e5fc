// wordris is a falling-letter word puzzle for the terminal.
//
// Usage:
//
//	wordris list              - List game modes and word packs
//	wordris play [pack]       - Play the campaign, or endless mode on one pack
//	wordris menu              - Start menu to pick modes interactively
//	wordris serve             - Start SSH server for remote play and races
//	wordris relay             - Start the websocket race relay
//	wordris scores <game>     - Show high scores for a mode
//	wordris simulate <pack>   - Run a headless autoplayed game
//	wordris stats             - Show play statistics per mode
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.wordris/scores.db)
//	--packs <dir>       - Directory with extra word packs
//	--log-level <level> - Log level for server commands
//
// Settings can also come from WORDRIS_* environment variables or a .env
// file in the working directory. Flags win.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordris/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/wordris/internal/games/wordris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPackDir  string
	flagLogLevel string
)

func main() {
	config.LoadEnv()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordris",
	Short: "Wordris - spell words with falling letters",
	Long: `Wordris drops colored letters into a small board. Steer them so
that pack words appear in a row (left to right) or a column (either
direction). Matched letters vanish and the tiles above fall into the gap.
The game ends when the middle column fills up.

Available commands:
  list      - Show game modes and word packs
  play      - Play directly
  menu      - Interactive picker menu
  serve     - Start SSH server for remote play and races
  relay     - Start the websocket race relay
  scores    - View high scores
  simulate  - Run a headless game with the autoplayer
  stats     - Play statistics per mode

Examples:
  wordris list
  wordris play
  wordris play animals
  wordris menu
  wordris serve --ssh :2222
  wordris scores wordris`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		applyEnv(cmd, "db", &flagDBPath, config.EnvDB)
		applyEnv(cmd, "packs", &flagPackDir, config.EnvPacks)
		applyEnv(cmd, "log-level", &flagLogLevel, config.EnvLogLevel)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wordris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPackDir, "packs", "", "Directory with extra word packs (*.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
}

// applyEnv fills an unset flag from the environment.
func applyEnv(cmd *cobra.Command, name string, dst *string, key string) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return
	}
	*dst = config.GetEnv(key, *dst)
}

// newLogger returns a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
