// Package config provides YAML-based game configuration loading, .env
// overrides and difficulty management for Wordris.
package config

import "time"

// WordrisConfig contains all configuration for a Wordris session.
type WordrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Weighting  WeightingConfig  `yaml:"weighting"`
	Palette    []string         `yaml:"palette"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid geometry.
type BoardConfig struct {
	Rows     int     `yaml:"rows"`
	Columns  int     `yaml:"columns"`
	CellSize float64 `yaml:"cell_size"`
	Padding  float64 `yaml:"padding"`
}

// TimingConfig defines fall speed and the pauses between drops.
type TimingConfig struct {
	FallingDuration      time.Duration `yaml:"falling_duration"`        // Full-height fall
	FastForwardDuration  time.Duration `yaml:"fast_forward_duration"`   // Fast drop and cascade moves
	LetterDropDelay      time.Duration `yaml:"letter_drop_delay"`       // Pause before each spawn
	FirstLetterDropDelay time.Duration `yaml:"first_letter_drop_delay"` // Extra pause before the first spawn
	RemovalFrames        int           `yaml:"removal_frames"`          // Length of the removal animation
}

// WeightingConfig defines next-letter selection.
type WeightingConfig struct {
	EasyDifficultyValue int `yaml:"easy_difficulty_value"` // Distractor draws per pick
}

// ScoringConfig defines points per matched word.
type ScoringConfig struct {
	PointsPerLetter int `yaml:"points_per_letter"`
	ChainBonus      int `yaml:"chain_bonus"` // Extra multiplier per chained re-check
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64       `yaml:"speed_multiplier"` // Fall speed added at max difficulty
	MinFallDuration time.Duration `yaml:"min_fall_duration"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset; unknown values are normal.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return DifficultyNormal
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// EasyValueForPreset returns the distractor count for a preset. Fewer
// distractors keep the scarce letters coming.
func EasyValueForPreset(preset DifficultyPreset, base int) int {
	switch preset {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return base * 2
	default:
		return base
	}
}
