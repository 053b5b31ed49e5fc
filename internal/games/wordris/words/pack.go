// Package words provides the target word packs for Wordris sessions:
// the built-in packs, a YAML directory loader, and the checks that make a
// pack playable on a given board.
package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
)

var (
	// ErrPackNotFound is returned when no pack has the requested ID.
	ErrPackNotFound = errors.New("words: pack not found")
	// ErrInvalidWord is returned for empty words or words with non-letters.
	ErrInvalidWord = errors.New("words: invalid word")
	// ErrPaletteTooSmall is returned when a palette cannot color a pack.
	ErrPaletteTooSmall = errors.New("words: palette too small")
	// ErrWordTooLong is returned when a word cannot fit on the board.
	ErrWordTooLong = errors.New("words: word longer than the board")
)

// Pack is a named list of target words.
type Pack struct {
	ID       string
	Name     string
	Words    []string
	Palette  []core.Color // Optional; empty means use the configured palette
	Metadata map[string]string
	FilePath string // Empty for built-in packs
}

// Normalize upper-cases and trims every word.
func (p *Pack) Normalize() {
	for i, w := range p.Words {
		p.Words[i] = strings.ToUpper(strings.TrimSpace(w))
	}
}

// Validate checks that the pack has words made only of letters.
func (p Pack) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("words: pack has no id")
	}
	if len(p.Words) == 0 {
		return fmt.Errorf("%w: pack %s has no words", ErrInvalidWord, p.ID)
	}
	for _, w := range p.Words {
		if w == "" {
			return fmt.Errorf("%w: empty word in pack %s", ErrInvalidWord, p.ID)
		}
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return fmt.Errorf("%w: %q in pack %s contains %q", ErrInvalidWord, w, p.ID, r)
			}
		}
	}
	return nil
}

// CheckPalette reports whether the palette has enough colors for the pack.
func (p Pack) CheckPalette(palette []core.Color) error {
	need := engine.RequiredColors(p.Words)
	if len(palette) < need {
		return fmt.Errorf("%w: pack %s needs %d colors, palette has %d", ErrPaletteTooSmall, p.ID, need, len(palette))
	}
	return nil
}

// CheckFits reports whether every word fits in a row or a column.
func (p Pack) CheckFits(rows, columns int) error {
	limit := core.Max(rows, columns)
	for _, w := range p.Words {
		if n := len([]rune(w)); n > limit {
			return fmt.Errorf("%w: %q has %d letters, board allows %d", ErrWordTooLong, w, n, limit)
		}
	}
	return nil
}

// PaletteFor returns the pack palette, or fallback when the pack has none.
func (p Pack) PaletteFor(fallback []core.Color) []core.Color {
	if len(p.Palette) > 0 {
		return p.Palette
	}
	return fallback
}

// Prepare validates a pack against a board config and returns the config
// with the palette the pack will use.
func Prepare(p Pack, cfg engine.Config) (engine.Config, error) {
	if err := p.Validate(); err != nil {
		return cfg, err
	}
	if err := p.CheckFits(cfg.Rows, cfg.Columns); err != nil {
		return cfg, err
	}
	cfg.Colors = p.PaletteFor(cfg.Colors)
	if err := p.CheckPalette(cfg.Colors); err != nil {
		return cfg, err
	}
	return cfg, nil
}
