package config

import (
	"testing"
	"time"
)

func testDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.5, MinFallDuration: 2 * time.Second},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())
	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.expected {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}

	d.SetEnabled(false)
	d.SetInitialLevel(0.3)
	if got := d.Level(100, 0); got != 0.3 {
		t.Errorf("disabled Level() = %v, expected initial 0.3", got)
	}
}

func TestFallingDuration(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())
	base := 8 * time.Second

	if got := d.FallingDuration(base, 0, 0); got != base {
		t.Errorf("FallingDuration at level 0 = %v, expected %v", got, base)
	}
	if got := d.FallingDuration(base, 100, 0); got != 3200*time.Millisecond {
		t.Errorf("FallingDuration at max = %v, expected 3.2s", got)
	}

	fast := testDifficulty()
	fast.Scaling.SpeedMultiplier = 10
	d = NewDifficultyManager(fast)
	if got := d.FallingDuration(base, 100, 0); got != 2*time.Second {
		t.Errorf("FallingDuration = %v, expected the 2s floor", got)
	}
	if got := d.FallingDuration(time.Second, 100, 0); got != time.Second {
		t.Errorf("FallingDuration below floor = %v, expected base 1s", got)
	}
}
