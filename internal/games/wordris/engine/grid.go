package engine

// Symbol is one element of a row or column sequence fed to the matcher.
// Letters use their rune value; EmptySymbol lies outside every rune value so
// an empty cell can never compare equal to a letter.
type Symbol int32

// EmptySymbol marks an empty cell.
const EmptySymbol Symbol = -1

// Cell is either empty or occupied by a settled tile.
type Cell struct {
	Tile *Tile
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Tile == nil
}

// Symbol returns the matcher symbol for the cell.
func (c Cell) Symbol() Symbol {
	if c.Tile == nil {
		return EmptySymbol
	}
	return Symbol(c.Tile.Letter)
}

// Line is a materialised row or column in reading order.
type Line struct {
	Index int // 1-based row or column number
	Cells []Cell
}

// Symbols returns the line as a matcher sequence.
func (l Line) Symbols() []Symbol {
	out := make([]Symbol, len(l.Cells))
	for i, c := range l.Cells {
		out[i] = c.Symbol()
	}
	return out
}

// SymbolsOf converts a word into a matcher sequence.
func SymbolsOf(word string) []Symbol {
	out := make([]Symbol, 0, len(word))
	for _, r := range word {
		out = append(out, Symbol(r))
	}
	return out
}

// Row returns the discretised row of a tile.
func (b *Board) Row(t *Tile) int {
	return b.cfg.RowAt(t.Top)
}

// settledAt returns the settled tile at (row, column), or nil.
func (b *Board) settledAt(row, column int) *Tile {
	for _, t := range b.tiles {
		if t.Settled() && t.Column == column && b.Row(t) == row {
			return t
		}
	}
	return nil
}

// RowView returns row i right to left: index 0 is the last column.
func (b *Board) RowView(i int) []Cell {
	cells := make([]Cell, b.cfg.Columns)
	for _, t := range b.tiles {
		if t.Settled() && b.Row(t) == i {
			cells[b.cfg.Columns-t.Column] = Cell{Tile: t}
		}
	}
	return cells
}

// ColumnView returns column j bottom to top: index 0 is the last row.
func (b *Board) ColumnView(j int) []Cell {
	cells := make([]Cell, b.cfg.Rows)
	for _, t := range b.tiles {
		if t.Settled() && t.Column == j {
			cells[b.cfg.Rows-b.Row(t)] = Cell{Tile: t}
		}
	}
	return cells
}

// Rows returns the reversed views of every row holding a settled tile,
// in ascending row order.
func (b *Board) Rows() []Line {
	populated := make([]bool, b.cfg.Rows+1)
	for _, t := range b.tiles {
		if t.Settled() {
			populated[b.Row(t)] = true
		}
	}
	var lines []Line
	for i := 1; i <= b.cfg.Rows; i++ {
		if populated[i] {
			lines = append(lines, Line{Index: i, Cells: b.RowView(i)})
		}
	}
	return lines
}

// Columns returns the reversed views of every column holding a settled
// tile, in ascending column order.
func (b *Board) Columns() []Line {
	populated := make([]bool, b.cfg.Columns+1)
	for _, t := range b.tiles {
		if t.Settled() {
			populated[t.Column] = true
		}
	}
	var lines []Line
	for j := 1; j <= b.cfg.Columns; j++ {
		if populated[j] {
			lines = append(lines, Line{Index: j, Cells: b.ColumnView(j)})
		}
	}
	return lines
}

// ColumnCount returns how many tiles, active or not, sit in a column.
func (b *Board) ColumnCount(column int) int {
	n := 0
	for _, t := range b.tiles {
		if t.Column == column {
			n++
		}
	}
	return n
}

// landingTop returns the resting top for a tile dropped into column.
func (b *Board) landingTop(column int) float64 {
	stop := b.cfg.Height()
	for _, t := range b.tiles {
		if t.Settled() && t.Column == column && t.Top < stop {
			stop = t.Top
		}
	}
	return stop - b.cfg.CellSize
}
