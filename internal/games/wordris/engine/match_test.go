package engine

import "testing"

func TestIndexOf(t *testing.T) {
	tests := []struct {
		name     string
		haystack []Symbol
		needle   []Symbol
		expected int
	}{
		{"found at start", SymbolsOf("CABXX"), SymbolsOf("CAB"), 0},
		{"found in middle", SymbolsOf("XCABX"), SymbolsOf("CAB"), 1},
		{"found at end", SymbolsOf("XXCAB"), SymbolsOf("CAB"), 2},
		{"first occurrence", SymbolsOf("ABAB"), SymbolsOf("AB"), 0},
		{"not found", SymbolsOf("CBA"), SymbolsOf("CAB"), -1},
		{"needle longer", SymbolsOf("CA"), SymbolsOf("CAB"), -1},
		{"empty needle", SymbolsOf("CA"), nil, 0},
		{"gap breaks word", []Symbol{'C', EmptySymbol, 'A', 'B'}, SymbolsOf("CAB"), -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IndexOf(tc.haystack, tc.needle); got != tc.expected {
				t.Errorf("IndexOf() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestEmptySymbolOutsideAlphabet(t *testing.T) {
	for _, r := range "-_ ?AZaz" {
		if Symbol(r) == EmptySymbol {
			t.Errorf("EmptySymbol collides with %q", r)
		}
	}
	if (Cell{}).Symbol() != EmptySymbol {
		t.Errorf("empty cell symbol = %d, expected EmptySymbol", (Cell{}).Symbol())
	}
}

func TestRowAndColumnViews(t *testing.T) {
	b, _ := newTestBoard(t, testConfig(3, 4), []string{"XYZ"})
	a := place(b, 'A', 1, 4)
	c := place(b, 'C', 3, 4)
	d := place(b, 'D', 3, 3)

	row := b.RowView(4)
	if row[0].Tile != c || !row[1].Empty() || row[2].Tile != a {
		t.Errorf("RowView(4) not right to left: %v", row)
	}
	col := b.ColumnView(3)
	if col[0].Tile != c || col[1].Tile != d || !col[2].Empty() || !col[3].Empty() {
		t.Errorf("ColumnView(3) not bottom to top: %v", col)
	}

	rows := b.Rows()
	if len(rows) != 2 || rows[0].Index != 3 || rows[1].Index != 4 {
		t.Errorf("Rows() materialised %d lines, expected rows 3 and 4", len(rows))
	}
	cols := b.Columns()
	if len(cols) != 2 || cols[0].Index != 1 || cols[1].Index != 3 {
		t.Errorf("Columns() materialised %d lines, expected columns 1 and 3", len(cols))
	}
}

func TestColumnMatchBothDirections(t *testing.T) {
	tests := []struct {
		name    string
		letters string // top to bottom, ending on the floor
	}{
		{"read top to bottom", "CAT"},
		{"read bottom to top", "TAC"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := newTestBoard(t, testConfig(3, 4), []string{"CAT"})
			var tiles []*Tile
			for i, r := range tc.letters {
				tiles = append(tiles, place(b, r, 1, 2+i))
			}

			res := b.Scan()
			if len(res.Words) != 1 || res.Words[0] != "CAT" {
				t.Fatalf("Words = %v, expected [CAT]", res.Words)
			}
			if len(res.Tiles) != 3 {
				t.Fatalf("matched %d tiles, expected 3", len(res.Tiles))
			}
			for _, tile := range tiles {
				if !res.InColumn(tile) || res.InRow(tile) {
					t.Errorf("%q column=%v row=%v, expected column only", tile.Letter, res.InColumn(tile), res.InRow(tile))
				}
			}
		})
	}
}

func TestRowsDoNotMatchReversed(t *testing.T) {
	b, _ := newTestBoard(t, testConfig(3, 4), []string{"CAB"})
	// Reads B A C right to left.
	place(b, 'C', 1, 4)
	place(b, 'A', 2, 4)
	place(b, 'B', 3, 4)

	if res := b.Scan(); !res.Empty() {
		t.Errorf("Scan() matched %v, expected nothing", res.Words)
	}
}

func TestScanDeduplicatesTiles(t *testing.T) {
	b, _ := newTestBoard(t, testConfig(3, 4), []string{"AB"})
	// Shared A: row 4 reads A B right to left, column 2 reads A B upward.
	shared := place(b, 'A', 2, 4)
	place(b, 'B', 1, 4)
	place(b, 'B', 2, 3)

	res := b.Scan()
	if len(res.Words) != 2 {
		t.Errorf("Words = %v, expected two occurrences", res.Words)
	}
	if len(res.Tiles) != 3 {
		t.Errorf("matched %d tiles, expected 3", len(res.Tiles))
	}
	if !res.InRow(shared) || !res.InColumn(shared) {
		t.Errorf("shared tile row=%v column=%v, expected both", res.InRow(shared), res.InColumn(shared))
	}

	res.apply(10)
	if !shared.MatchedRow || !shared.MatchedColumn || shared.State != StateMatchedPendingRemoval {
		t.Errorf("apply() left shared tile %+v", shared)
	}
}

func TestScanReportsEveryLine(t *testing.T) {
	b, _ := newTestBoard(t, testConfig(3, 4), []string{"AB"})
	place(b, 'A', 2, 4)
	place(b, 'B', 1, 4)
	place(b, 'A', 2, 3)
	place(b, 'B', 1, 3)

	res := b.Scan()
	rowHits := 0
	for _, w := range res.Words {
		if w == "AB" {
			rowHits++
		}
	}
	if rowHits < 2 {
		t.Errorf("Words = %v, expected AB from both rows", res.Words)
	}
}
