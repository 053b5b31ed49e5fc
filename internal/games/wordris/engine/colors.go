package engine

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/vovakirdan/wordris/internal/core"
)

// ErrPaletteExhausted is returned when the palette runs out of colors
// before every letter is colored. Use RequiredColors to size the palette.
var ErrPaletteExhausted = errors.New("engine: palette exhausted")

// AssignColors gives each distinct letter of the words one color.
//
// Words are visited in order. Each word draws a home color from the pool.
// A letter found in only one word takes that word's home color; a letter
// found in several words draws a color of its own on every occurrence,
// keeping only the first. Drawn colors leave the pool.
func AssignColors(words []string, palette []core.Color, rng *rand.Rand) (map[rune]core.Color, error) {
	pool := append([]core.Color(nil), palette...)
	colors := make(map[rune]core.Color)

	draw := func() (core.Color, error) {
		if len(pool) == 0 {
			return 0, ErrPaletteExhausted
		}
		i := rng.Intn(len(pool))
		c := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		return c, nil
	}

	for _, word := range words {
		home, err := draw()
		if err != nil {
			return colors, err
		}
		for _, r := range word {
			_, colored := colors[r]
			if containing(words, r) == 1 {
				if !colored {
					colors[r] = home
				}
				continue
			}
			c, err := draw()
			if err != nil {
				return colors, err
			}
			if !colored {
				colors[r] = c
			}
		}
	}
	return colors, nil
}

// RequiredColors returns how many palette entries AssignColors consumes for
// the given words.
func RequiredColors(words []string) int {
	n := len(words)
	for _, w := range words {
		for _, r := range w {
			if containing(words, r) > 1 {
				n++
			}
		}
	}
	return n
}

func containing(words []string, r rune) int {
	n := 0
	for _, w := range words {
		if strings.ContainsRune(w, r) {
			n++
		}
	}
	return n
}
