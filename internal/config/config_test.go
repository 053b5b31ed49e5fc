package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg WordrisConfig
	if err := yaml.Unmarshal(defaultWordrisYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultWordrisConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultWordrisConfig())
	}
}

func TestEngineConfigMatchesEngineDefaults(t *testing.T) {
	got, err := DefaultWordrisConfig().EngineConfig(60)
	if err != nil {
		t.Fatalf("EngineConfig() failed: %v", err)
	}
	if !reflect.DeepEqual(got, engine.DefaultConfig()) {
		t.Errorf("EngineConfig(60) = %+v, expected %+v", got, engine.DefaultConfig())
	}
}

func TestEngineConfigErrors(t *testing.T) {
	cfg := DefaultWordrisConfig()
	cfg.Palette = []string{"red", "plaid"}
	if _, err := cfg.EngineConfig(60); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("unknown color error = %v, expected ErrInvalidConfig", err)
	}

	cfg = DefaultWordrisConfig()
	cfg.Board.Padding = 5
	if _, err := cfg.EngineConfig(60); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("padding error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadWordrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordris.yaml")
	data := "board:\n  rows: 12\ntiming:\n  letter_drop_delay: 1s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWordris(path)
	if err != nil {
		t.Fatalf("LoadWordris() failed: %v", err)
	}
	if cfg.Board.Rows != 12 {
		t.Errorf("Rows = %d, expected 12", cfg.Board.Rows)
	}
	if cfg.Board.Columns != 7 {
		t.Errorf("Columns = %d, expected default 7", cfg.Board.Columns)
	}
	if cfg.Timing.LetterDropDelay != time.Second {
		t.Errorf("LetterDropDelay = %v, expected 1s", cfg.Timing.LetterDropDelay)
	}

	if _, err := LoadWordris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadWordris() with a missing file succeeded, expected error")
	}
}

func TestApplyWordrisPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		easyVal int
	}{
		{DifficultyEasy, true, 0.0, 0},
		{DifficultyNormal, true, 0.3, 2},
		{DifficultyHard, true, 0.7, 4},
		{DifficultyFixed, false, 0.0, 2},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultWordrisConfig()
			ApplyWordrisPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Weighting.EasyDifficultyValue != tc.easyVal {
				t.Errorf("EasyDifficultyValue = %d, expected %d", cfg.Weighting.EasyDifficultyValue, tc.easyVal)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if got := ParsePreset("hard"); got != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, expected hard", got)
	}
	if got := ParsePreset("insane"); got != DifficultyNormal {
		t.Errorf("ParsePreset(insane) = %v, expected normal", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("WORDRIS_TEST_VALUE", "set")
	if got := GetEnv("WORDRIS_TEST_VALUE", "def"); got != "set" {
		t.Errorf("GetEnv() = %q, expected set", got)
	}
	t.Setenv("WORDRIS_TEST_VALUE", "")
	if got := GetEnv("WORDRIS_TEST_VALUE", "def"); got != "def" {
		t.Errorf("GetEnv() = %q, expected def", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WORDRIS_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORDRIS_TEST_DOTENV", "")
	os.Unsetenv("WORDRIS_TEST_DOTENV")

	LoadEnv(path)
	if got := GetEnv("WORDRIS_TEST_DOTENV", ""); got != "from-file" {
		t.Errorf("after LoadEnv, value = %q, expected from-file", got)
	}
}
