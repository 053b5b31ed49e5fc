package engine

import (
	"testing"

	"github.com/vovakirdan/wordris/internal/core"
)

// testConfig returns a small fast board for tests.
func testConfig(columns, rows int) Config {
	cfg := DefaultConfig()
	cfg.Columns = columns
	cfg.Rows = rows
	cfg.FallingTicks = 40
	cfg.FastForwardTicks = 4
	cfg.LetterDropDelayTicks = 3
	cfg.FirstLetterDropDelayTicks = 5
	cfg.RemovalTicks = 10
	cfg.EasyDifficultyValue = 0
	return cfg
}

type recorder struct {
	words    [][]string
	gameOver int
	next     []Letter
	settled  int
}

func (r *recorder) WordsMatched(words []string) { r.words = append(r.words, words) }
func (r *recorder) GameOver()                   { r.gameOver++ }
func (r *recorder) NextLetter(l Letter)         { r.next = append(r.next, l) }
func (r *recorder) TileSettled(Tile)            { r.settled++ }

func newTestBoard(t *testing.T, cfg Config, words []string) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := NewBoard(cfg, words, 1, rec)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	return b, rec
}

// place puts a settled tile directly on the grid.
func place(b *Board, letter rune, column, row int) *Tile {
	b.nextID++
	t := newTile(b.nextID, Letter{Rune: letter, Color: core.ColorWhite}, column)
	t.Top = b.cfg.RowTop(row)
	t.State = StateSettled
	b.tiles = append(b.tiles, t)
	return t
}

// stepUntil steps the board until cond holds, failing after limit ticks.
func stepUntil(t *testing.T, b *Board, limit int, what string, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		b.Step()
	}
	if !cond() {
		t.Fatalf("board did not reach %s within %d ticks (phase %s)", what, limit, b.Phase())
	}
}

// checkInvariants verifies the single-active-tile and one-tile-per-cell rules.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	active := 0
	cells := make(map[[2]int]int)
	for _, tile := range b.Tiles() {
		if tile.Active() {
			active++
		}
		if tile.Settled() && tile.fall == nil {
			key := [2]int{b.Row(tile), tile.Column}
			if other, ok := cells[key]; ok {
				t.Fatalf("tiles %d and %d share row %d column %d", other, tile.ID, key[0], key[1])
			}
			cells[key] = tile.ID
		}
	}
	if active > 1 {
		t.Fatalf("%d active tiles, expected at most 1", active)
	}
}
