// Package engine implements the Wordris board simulation: the grid model,
// next-letter weighting, color assignment, word matching, the cascade
// resolver and the drop scheduler. It has no UI or terminal dependencies and
// advances in fixed ticks so that a seed plus an input sequence always
// reproduces the same game.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/wordris/internal/core"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config holds the session constants of a board. Durations are in ticks.
type Config struct {
	Rows    int // ROWS_COUNT
	Columns int // COLUMNS_COUNT

	CellSize float64 // Height (and width) of one grid cell in position units
	Padding  float64 // Extra space above the first row

	FallingTicks              int // Time for a tile to fall the full board height
	FastForwardTicks          int // Time for a fast-forward drop and for cascade moves
	LetterDropDelayTicks      int // Pause between a resolved settle and the next spawn
	FirstLetterDropDelayTicks int // Extra pause before the very first spawn
	RemovalTicks              int // Length of the shrink/fade/rotate removal animation

	EasyDifficultyValue int // Number of distractor draws added to the weighting pool

	Colors []core.Color // Palette used by color assignment
}

// DefaultConfig returns the stock 7x10 board at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Rows:                      10,
		Columns:                   7,
		CellSize:                  10,
		Padding:                   2,
		FallingTicks:              480,
		FastForwardTicks:          12,
		LetterDropDelayTicks:      18,
		FirstLetterDropDelayTicks: 120,
		RemovalTicks:              10,
		EasyDifficultyValue:       2,
		Colors: []core.Color{
			core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue,
			core.ColorMagenta, core.ColorCyan, core.ColorOrange,
			core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow,
			core.ColorBrightBlue, core.ColorBrightMagenta, core.ColorBrightCyan,
			core.ColorWhite, core.ColorGray,
		},
	}
}

// Validate reports the first unusable value in the config.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Columns <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	case c.Padding < 0 || c.Padding >= c.CellSize/2:
		return fmt.Errorf("%w: padding must be in [0, cell/2)", ErrInvalidConfig)
	case c.FallingTicks <= 0 || c.FastForwardTicks <= 0 || c.RemovalTicks <= 0:
		return fmt.Errorf("%w: animation durations must be positive", ErrInvalidConfig)
	case c.LetterDropDelayTicks < 0 || c.FirstLetterDropDelayTicks < 0:
		return fmt.Errorf("%w: drop delays must not be negative", ErrInvalidConfig)
	case c.EasyDifficultyValue < 0:
		return fmt.Errorf("%w: easy difficulty value must not be negative", ErrInvalidConfig)
	case len(c.Colors) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	return nil
}

// Height is the board height: all rows plus the top padding.
func (c Config) Height() float64 {
	return float64(c.Rows)*c.CellSize + c.Padding
}

// RowTop returns the resting top position of a 1-based row.
func (c Config) RowTop(row int) float64 {
	return c.Padding + float64(row-1)*c.CellSize
}

// RowAt maps a continuous top position to the nearest 1-based row.
func (c Config) RowAt(top float64) int {
	row := int(math.Round((top-c.Padding)/c.CellSize)) + 1
	return core.Clamp(row, 1, c.Rows)
}

// MiddleColumn is the spawn column and the column watched for game over.
func (c Config) MiddleColumn() int {
	return c.Columns/2 + 1
}

// TicksFor converts a duration in milliseconds to ticks at the given rate,
// rounding up so that a non-zero duration never collapses to zero ticks.
func TicksFor(ms int64, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return int((ms*int64(tickRate) + 999) / 1000)
}
