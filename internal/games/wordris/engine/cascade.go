package engine

import "sort"

// ColumnFall is the rigid move of a group of tiles in one column.
type ColumnFall struct {
	Column   int
	Tiles    []*Tile
	Distance float64
}

// PlanCascade groups the tiles that must fall by column and computes one
// distance per column. The anchor is the group's lowest tile; the group
// comes to rest on the highest settled tile below the anchor, or on the
// floor when there is none.
func (b *Board) PlanCascade(mustFall []*Tile) []ColumnFall {
	groups := make(map[int][]*Tile)
	for _, t := range mustFall {
		groups[t.Column] = append(groups[t.Column], t)
	}

	columns := make([]int, 0, len(groups))
	for c := range groups {
		columns = append(columns, c)
	}
	sort.Ints(columns)

	falls := make([]ColumnFall, 0, len(columns))
	for _, c := range columns {
		group := groups[c]
		anchor := group[0]
		for _, t := range group[1:] {
			if b.Row(t) > b.Row(anchor) {
				anchor = t
			}
		}

		stop := b.cfg.Height()
		anchorRow := b.Row(anchor)
		for _, t := range b.tiles {
			if t.Active() || t.Column != c || b.Row(t) <= anchorRow {
				continue
			}
			if t.Top < stop {
				stop = t.Top
			}
		}

		falls = append(falls, ColumnFall{
			Column:   c,
			Tiles:    group,
			Distance: stop - (anchor.Top + b.cfg.CellSize),
		})
	}
	return falls
}

// floating returns, per column, the settled tiles resting above the lowest
// gap in that column.
func (b *Board) floating() []*Tile {
	var out []*Tile
	for c := 1; c <= b.cfg.Columns; c++ {
		var stack []*Tile
		for _, t := range b.tiles {
			if t.Settled() && t.Column == c {
				stack = append(stack, t)
			}
		}
		sort.Slice(stack, func(i, j int) bool { return stack[i].Top > stack[j].Top })

		expected := b.cfg.Height()
		for i, t := range stack {
			if expected-(t.Top+b.cfg.CellSize) > b.cfg.CellSize/2 {
				out = append(out, stack[i:]...)
				break
			}
			expected = t.Top
		}
	}
	return out
}

// startCascade launches the column moves. All columns move for the same
// number of ticks so they complete together.
func (b *Board) startCascade(falls []ColumnFall) {
	ticks := float64(b.cfg.FastForwardTicks)
	for _, f := range falls {
		for _, t := range f.Tiles {
			t.fall = &cascadeMove{
				target: t.Top + f.Distance,
				step:   f.Distance / ticks,
			}
		}
	}
	b.cascadeLeft = b.cfg.FastForwardTicks
	b.setPhase(PhaseCascading)
}

func (b *Board) advanceCascade() {
	b.cascadeLeft--
	done := b.cascadeLeft <= 0
	for _, t := range b.tiles {
		if t.fall == nil {
			continue
		}
		if done {
			t.Top = t.fall.target
			t.fall = nil
		} else {
			t.Top += t.fall.step
		}
	}
	b.progress++
	if !done {
		return
	}

	if rest := b.floating(); len(rest) > 0 {
		b.startCascade(b.PlanCascade(rest))
		return
	}
	b.check()
}
