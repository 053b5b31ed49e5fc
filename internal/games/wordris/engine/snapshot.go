package engine

import "github.com/vovakirdan/wordris/internal/core"

// TileView is a read-only copy of a tile for renderers.
type TileView struct {
	ID      int
	Letter  rune
	Color   core.Color
	Column  int
	Row     int
	Top     float64
	State   TileState
	Angle   float64
	Scale   float64
	Opacity float64
}

// Snapshot is a read-only view of the board at one tick.
type Snapshot struct {
	Tick   uint64
	Phase  Phase
	Paused bool
	Next   Letter
	Tiles  []TileView
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   b.tick,
		Phase:  b.phase,
		Paused: b.paused,
		Next:   b.next,
		Tiles:  make([]TileView, 0, len(b.tiles)),
	}
	for _, t := range b.tiles {
		s.Tiles = append(s.Tiles, TileView{
			ID:      t.ID,
			Letter:  t.Letter,
			Color:   t.Color,
			Column:  t.Column,
			Row:     b.Row(t),
			Top:     t.Top,
			State:   t.State,
			Angle:   t.Angle,
			Scale:   t.Scale,
			Opacity: t.Opacity,
		})
	}
	return s
}
