package engine

import "github.com/vovakirdan/wordris/internal/core"

// TileState is the lifecycle state of a letter tile.
type TileState int

const (
	StateFalling TileState = iota
	StateSettled
	StateFastForwarding
	StateMatchedPendingRemoval
	StateRemoved
)

// String returns a human-readable name for the state.
func (s TileState) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateSettled:
		return "settled"
	case StateFastForwarding:
		return "fastForwarding"
	case StateMatchedPendingRemoval:
		return "matchedPendingRemoval"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Letter is a character paired with its session color.
type Letter struct {
	Rune  rune
	Color core.Color
}

// Tile is one letter instance owned by a board.
type Tile struct {
	ID     int
	Letter rune
	Color  core.Color
	Column int     // 1-based, changes only while the tile is active
	Top    float64 // Continuous vertical position
	State  TileState

	MatchedRow    bool
	MatchedColumn bool

	// Removal animation, rendering only.
	Angle   float64
	Scale   float64
	Opacity float64

	removalLeft int
	fall        *cascadeMove
}

// cascadeMove is an in-flight rigid cascade step for a settled tile.
type cascadeMove struct {
	target float64
	step   float64
}

func newTile(id int, l Letter, column int) *Tile {
	return &Tile{
		ID:      id,
		Letter:  l.Rune,
		Color:   l.Color,
		Column:  column,
		Top:     0,
		State:   StateFalling,
		Scale:   1,
		Opacity: 1,
	}
}

// Active reports whether the tile is the one under player control.
func (t *Tile) Active() bool {
	return t.State == StateFalling || t.State == StateFastForwarding
}

// Settled reports whether the tile is at rest in the grid.
func (t *Tile) Settled() bool {
	return t.State == StateSettled
}

func (t *Tile) pendingRemoval() bool {
	return t.State == StateMatchedPendingRemoval
}

// stepRemoval advances the removal animation by one frame and reports
// whether it has completed.
func (t *Tile) stepRemoval() bool {
	t.Angle += 3
	t.Scale -= 0.05
	t.Opacity -= 0.1
	if t.Opacity < 0 {
		t.Opacity = 0
	}
	t.removalLeft--
	return t.removalLeft <= 0
}
