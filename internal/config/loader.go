package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
)

// LoadWordris loads Wordris configuration.
// Search order: customPath -> ~/.wordris/configs/wordris.yaml -> ./configs/wordris.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadWordris(customPath string) (WordrisConfig, error) {
	cfg := DefaultWordrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("wordris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultWordrisConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/wordris.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultWordrisConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultWordrisYAML, &cfg); err != nil {
		return DefaultWordrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordris", "configs", filename)
}

// ApplyWordrisPreset modifies the config based on a difficulty preset.
func ApplyWordrisPreset(cfg *WordrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
	cfg.Weighting.EasyDifficultyValue = EasyValueForPreset(preset, cfg.Weighting.EasyDifficultyValue)
}

// EngineConfig converts the file configuration to board constants at the
// given tick rate.
func (c WordrisConfig) EngineConfig(tickRate int) (engine.Config, error) {
	palette, bad, ok := core.ParseColors(c.Palette)
	if !ok {
		return engine.Config{}, fmt.Errorf("%w: unknown color %q", engine.ErrInvalidConfig, bad)
	}

	ec := engine.Config{
		Rows:                      c.Board.Rows,
		Columns:                   c.Board.Columns,
		CellSize:                  c.Board.CellSize,
		Padding:                   c.Board.Padding,
		FallingTicks:              engine.TicksFor(c.Timing.FallingDuration.Milliseconds(), tickRate),
		FastForwardTicks:          engine.TicksFor(c.Timing.FastForwardDuration.Milliseconds(), tickRate),
		LetterDropDelayTicks:      engine.TicksFor(c.Timing.LetterDropDelay.Milliseconds(), tickRate),
		FirstLetterDropDelayTicks: engine.TicksFor(c.Timing.FirstLetterDropDelay.Milliseconds(), tickRate),
		RemovalTicks:              c.Timing.RemovalFrames,
		EasyDifficultyValue:       c.Weighting.EasyDifficultyValue,
		Colors:                    palette,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, err
	}
	return ec, nil
}
