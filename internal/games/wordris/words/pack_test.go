package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
)

func TestBuiltinPacks(t *testing.T) {
	packs := Builtin()
	if len(packs) < 4 {
		t.Fatalf("Builtin() returned %d packs, expected at least 4", len(packs))
	}
	for i := 1; i < len(packs); i++ {
		if packs[i-1].ID >= packs[i].ID {
			t.Errorf("packs not sorted: %s before %s", packs[i-1].ID, packs[i].ID)
		}
	}

	cfg := engine.DefaultConfig()
	for _, p := range packs {
		if _, err := Prepare(p, cfg); err != nil {
			t.Errorf("built-in pack %s not playable: %v", p.ID, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: test
words: [" cat", "Dog "]
palette: [red, bright_blue]
metadata:
  author: me
`)
	p, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("Name = %q, expected id fallback", p.Name)
	}
	if len(p.Words) != 2 || p.Words[0] != "CAT" || p.Words[1] != "DOG" {
		t.Errorf("Words = %v, expected [CAT DOG]", p.Words)
	}
	if len(p.Palette) != 2 || p.Palette[1] != core.ColorBrightBlue {
		t.Errorf("Palette = %v, expected [red bright-blue]", p.Palette)
	}
	if p.Metadata["author"] != "me" {
		t.Errorf("Metadata = %v", p.Metadata)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "id: [unclosed"},
		{"no words", "id: empty\nwords: []"},
		{"digit in word", "id: x\nwords: [c4t]"},
		{"unknown color", "id: x\nwords: [cat]\npalette: [plaid]"},
		{"no id", "words: [cat]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.data)); err == nil {
				t.Errorf("ParseYAML() succeeded, expected error")
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	cfg := engine.DefaultConfig()

	small := cfg
	small.Colors = small.Colors[:3]
	if _, err := Prepare(Pack{ID: "ab", Words: []string{"AB", "BC"}}, small); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("Prepare() error = %v, expected ErrPaletteTooSmall", err)
	}

	tiny := cfg
	tiny.Rows, tiny.Columns = 3, 3
	if _, err := Prepare(Pack{ID: "long", Words: []string{"HORSE"}}, tiny); !errors.Is(err, ErrWordTooLong) {
		t.Errorf("Prepare() error = %v, expected ErrWordTooLong", err)
	}

	own := Pack{ID: "own", Words: []string{"AB"}, Palette: []core.Color{core.ColorRed}}
	got, err := Prepare(own, cfg)
	if err != nil {
		t.Fatalf("Prepare() failed: %v", err)
	}
	if len(got.Colors) != 1 || got.Colors[0] != core.ColorRed {
		t.Errorf("Colors = %v, expected pack palette", got.Colors)
	}
}

func TestLoaderAndAvailable(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "more")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(dir, "zoo.yaml"):     "id: zoo\nwords: [yak, emu]\n",
		filepath.Join(nested, "tech.yml"):  "id: tech\nname: My Tech\nwords: [go]\n",
		filepath.Join(dir, "broken.yaml"):  "id: [",
		filepath.Join(dir, "notes.txt"):    "not a pack",
	}
	for p, content := range files {
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	packs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(packs) != 2 || packs[0].ID != "tech" || packs[1].ID != "zoo" {
		t.Errorf("LoadAll() = %d packs, expected tech and zoo", len(packs))
	}

	if _, err := NewLoader(dir).LoadByID("nope"); !errors.Is(err, ErrPackNotFound) {
		t.Errorf("LoadByID() error = %v, expected ErrPackNotFound", err)
	}

	tech, err := Find(dir, "tech")
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if tech.Name != "My Tech" || tech.FilePath == "" {
		t.Errorf("Find(tech) = %+v, expected the custom pack to win", tech)
	}
	if _, err := Find(dir, "animals"); err != nil {
		t.Errorf("Find(animals) failed: %v", err)
	}
	if _, err := Find(filepath.Join(dir, "missing"), "animals"); err != nil {
		t.Errorf("Find() with a missing dir failed: %v", err)
	}
}
