package engine

// MatchResult is the outcome of one scan of the grid.
type MatchResult struct {
	Tiles []*Tile  // Matched tiles, each at most once, in discovery order
	Words []string // One entry per matched occurrence

	byRow    map[*Tile]bool
	byColumn map[*Tile]bool
}

// Empty reports whether the scan found nothing.
func (m MatchResult) Empty() bool {
	return len(m.Tiles) == 0
}

// InRow reports whether the tile was matched by the row pass.
func (m MatchResult) InRow(t *Tile) bool { return m.byRow[t] }

// InColumn reports whether the tile was matched by the column pass.
func (m MatchResult) InColumn(t *Tile) bool { return m.byColumn[t] }

func (m *MatchResult) add(t *Tile, row bool) {
	if !m.byRow[t] && !m.byColumn[t] {
		m.Tiles = append(m.Tiles, t)
	}
	if row {
		m.byRow[t] = true
	} else {
		m.byColumn[t] = true
	}
}

// IndexOf returns the first index at which needle occurs contiguously in
// haystack, or -1.
func IndexOf(haystack, needle []Symbol) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, s := range needle {
			if haystack[i+j] != s {
				continue outer
			}
		}
		return i
	}
	return -1
}

func reversed(s []Symbol) []Symbol {
	out := make([]Symbol, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Scan searches every populated row for each target word and every
// populated column for each word and its reverse. Only the first
// occurrence of a word per line and direction is taken. The board is not
// modified.
func (b *Board) Scan() MatchResult {
	res := MatchResult{
		byRow:    make(map[*Tile]bool),
		byColumn: make(map[*Tile]bool),
	}

	for _, line := range b.Rows() {
		symbols := line.Symbols()
		for i, word := range b.words {
			at := IndexOf(symbols, b.wordSymbols[i])
			if at < 0 {
				continue
			}
			res.Words = append(res.Words, word)
			for idx := at; idx < at+len(b.wordSymbols[i]); idx++ {
				column := b.cfg.Columns + 1 - (idx + 1)
				res.add(b.settledAt(line.Index, column), true)
			}
		}
	}

	for _, line := range b.Columns() {
		symbols := line.Symbols()
		for _, reverse := range []bool{false, true} {
			for i, word := range b.words {
				needle := b.wordSymbols[i]
				if reverse {
					needle = reversed(needle)
				}
				at := IndexOf(symbols, needle)
				if at < 0 {
					continue
				}
				res.Words = append(res.Words, word)
				for idx := at; idx < at+len(needle); idx++ {
					row := b.cfg.Rows + 1 - (idx + 1)
					res.add(b.settledAt(row, line.Index), false)
				}
			}
		}
	}

	return res
}

// apply flags and schedules the matched tiles for removal.
func (m MatchResult) apply(removalTicks int) {
	for _, t := range m.Tiles {
		t.MatchedRow = m.byRow[t]
		t.MatchedColumn = m.byColumn[t]
		t.State = StateMatchedPendingRemoval
		t.removalLeft = removalTicks
	}
}
