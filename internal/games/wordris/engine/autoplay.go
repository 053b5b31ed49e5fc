package engine

// Autoplayer steers the active tile for headless runs and demos. It aims
// for a column where the tile completes a word, otherwise for the lowest
// stack nearest the middle, and fast-forwards once it is in place.
type Autoplayer struct {
	// Every is the number of ticks between moves; 0 moves every tick.
	Every int

	planned int
	target  int
	wait    int
}

// Act issues at most one command to the board.
func (a *Autoplayer) Act(b *Board) {
	t := b.Active()
	if t == nil || t.State != StateFalling || b.Paused() {
		return
	}
	if a.planned != t.ID {
		a.planned = t.ID
		a.target = a.choose(b)
		a.wait = 0
	}
	if a.wait > 0 {
		a.wait--
		return
	}
	a.wait = a.Every

	switch {
	case t.Column < a.target:
		if !b.MoveActive(1) {
			b.FastForward()
		}
	case t.Column > a.target:
		if !b.MoveActive(-1) {
			b.FastForward()
		}
	default:
		b.FastForward()
	}
}

func (a *Autoplayer) choose(b *Board) int {
	cfg := b.Config()
	middle := cfg.MiddleColumn()
	best, bestCount := middle, b.ColumnCount(middle)
	for c := 1; c <= cfg.Columns; c++ {
		if b.wouldMatch(c) {
			return c
		}
		n := b.ColumnCount(c)
		if n < bestCount || (n == bestCount && distance(c, middle) < distance(best, middle)) {
			best, bestCount = c, n
		}
	}
	return best
}

// wouldMatch reports whether the active tile completes a word when dropped
// into column. The board is restored before returning.
func (b *Board) wouldMatch(column int) bool {
	t := b.active
	if t == nil {
		return false
	}
	col, top, state := t.Column, t.Top, t.State
	t.Column = column
	t.Top = b.landingTop(column)
	t.State = StateSettled
	hit := t.Top >= 0 && !b.Scan().Empty()
	t.Column, t.Top, t.State = col, top, state
	return hit
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
