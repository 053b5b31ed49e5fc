package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordris/internal/config"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
)

var (
	flagSimTicks int
	flagSimEvery int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <pack>",
	Short: "Run a headless game with the autoplayer",
	Long: `Play one pack without a UI, steering every letter with the built-in
autoplayer, and log matched words as they happen. Useful for checking
that a custom pack is playable and for reproducing runs with --seed.

Examples:
  wordris simulate animals
  wordris simulate colors --ticks 36000 --seed 42
  wordris simulate mypack --packs ./packs --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Maximum ticks to run (0 = until game over)")
	simulateCmd.Flags().IntVar(&flagSimEvery, "every", 4, "Ticks between autoplayer moves")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(_ *cobra.Command, args []string) {
	logger := newLogger("wordris-sim")

	pack, err := words.Find(flagPackDir, args[0])
	if err != nil {
		logger.Error("cannot load pack", "pack", args[0], "error", err)
		os.Exit(1)
	}

	if flagConfig == "" {
		flagConfig = config.GetEnv(config.EnvConfig, "")
	}
	cfg, err := config.LoadWordris(flagConfig)
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyWordrisPreset(&cfg, config.ParsePreset(flagDifficulty))
	}

	ec, err := cfg.EngineConfig(flagFPS)
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	ec, err = words.Prepare(pack, ec)
	if err != nil {
		logger.Error("pack does not fit the board", "pack", pack.ID, "error", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	matched := 0
	board, err := engine.NewBoard(ec, pack.Words, seed, engine.ListenerFuncs{
		OnWordsMatched: func(found []string) {
			matched += len(found)
			logger.Debug("words matched", "words", found)
		},
	})
	if err != nil {
		logger.Error("cannot create board", "error", err)
		os.Exit(1)
	}
	board.Start()

	auto := &engine.Autoplayer{Every: flagSimEvery}
	runner := &engine.Runner{
		Sim:        board,
		BeforeStep: func(int) { auto.Act(board) },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "pack", pack.ID, "seed", seed, "ticks", flagSimTicks)
	res, err := runner.Run(ctx, flagSimTicks)
	switch {
	case errors.Is(err, engine.ErrStalled):
		logger.Error("simulation stalled", "tick", res.Ticks, "error", err)
		os.Exit(1)
	case err != nil:
		logger.Warn("simulation interrupted", "tick", res.Ticks, "error", err)
	}

	logger.Info("simulation finished",
		"ticks", res.Ticks,
		"seconds", res.Ticks/max(flagFPS, 1),
		"words", matched,
		"game_over", res.GameOver,
	)
}
