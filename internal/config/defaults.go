package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/wordris.yaml
var defaultWordrisYAML []byte

// DefaultWordrisConfig returns the default Wordris configuration.
func DefaultWordrisConfig() WordrisConfig {
	return WordrisConfig{
		Board: BoardConfig{
			Rows:     10,
			Columns:  7,
			CellSize: 10,
			Padding:  2,
		},
		Timing: TimingConfig{
			FallingDuration:      8 * time.Second,
			FastForwardDuration:  200 * time.Millisecond,
			LetterDropDelay:      300 * time.Millisecond,
			FirstLetterDropDelay: 2 * time.Second,
			RemovalFrames:        10,
		},
		Weighting: WeightingConfig{
			EasyDifficultyValue: 2,
		},
		Palette: []string{
			"red", "green", "yellow", "blue", "magenta", "cyan", "orange",
			"bright_red", "bright_green", "bright_yellow", "bright_blue",
			"bright_magenta", "bright_cyan", "white", "gray",
		},
		Scoring: ScoringConfig{
			PointsPerLetter: 10,
			ChainBonus:      1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				MinFallDuration: 2 * time.Second,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "wordris", "wordris_endless":
		return defaultWordrisYAML
	default:
		return nil
	}
}
