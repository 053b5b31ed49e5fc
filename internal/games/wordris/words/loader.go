package words

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed packs/*.yaml
var builtinFS embed.FS

// Builtin returns the packs shipped with the binary, sorted by ID.
func Builtin() []Pack {
	var packs []Pack
	//nolint:errcheck // Embedded directory always exists
	fs.WalkDir(builtinFS, "packs", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isPackFile(p) {
			return nil
		}
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return nil
		}
		pack, err := ParseYAML(data)
		if err != nil {
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	sortPacks(packs)
	return packs
}

// Loader loads packs from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every pack file under Root, skipping files
// that fail to parse. Packs are sorted by ID.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPackFile(p) {
			return nil
		}
		pack, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortPacks(packs)
	return packs, nil
}

// LoadFile loads a single pack file.
func (l *Loader) LoadFile(p string) (Pack, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	pack, err := ParseYAML(data)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	pack.FilePath = p
	return pack, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("%w: %s", ErrPackNotFound, id)
}

// Available merges the built-in packs with those under dir. A pack in dir
// replaces a built-in pack with the same ID. An empty or missing dir yields
// just the built-ins.
func Available(dir string) ([]Pack, error) {
	byID := make(map[string]Pack)
	for _, p := range Builtin() {
		byID[p.ID] = p
	}
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			custom, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, p := range custom {
				byID[p.ID] = p
			}
		}
	}

	packs := make([]Pack, 0, len(byID))
	for _, p := range byID {
		packs = append(packs, p)
	}
	sortPacks(packs)
	return packs, nil
}

// Find returns the pack with the given ID, preferring dir over the
// built-in packs.
func Find(dir, id string) (Pack, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			p, err := NewLoader(dir).LoadByID(id)
			if err == nil {
				return p, nil
			}
			if !errors.Is(err, ErrPackNotFound) {
				return Pack{}, err
			}
		}
	}
	for _, p := range Builtin() {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("%w: %s", ErrPackNotFound, id)
}

func isPackFile(p string) bool {
	switch strings.ToLower(path.Ext(filepath.ToSlash(p))) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortPacks(packs []Pack) {
	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
}
