package tui

import (
	"strings"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris"
	"github.com/vovakirdan/wordris/internal/registry"
	"github.com/vovakirdan/wordris/internal/storage"
)

// packGame is implemented by games that play word packs.
type packGame interface {
	PackID() string
	WordsMatched() int
}

// recorder persists the results of one game: matched words as they happen
// and the final score once.
type recorder struct {
	store *storage.Store
	saved bool
}

// observe records the outcome of one step. Storage errors are ignored; the
// game continues regardless.
func (r *recorder) observe(game registry.Game, res core.StepResult) {
	if r.store == nil {
		return
	}

	var matched []string
	for _, e := range res.Events {
		if w, ok := strings.CutPrefix(e, wordris.EventMatch); ok {
			matched = append(matched, w)
		}
	}
	if len(matched) > 0 {
		//nolint:errcheck // Best-effort save
		r.store.RecordMatchedWords(game.ID(), matched)
	}

	if res.State.GameOver && !r.saved && res.State.Score > 0 {
		packID, words := "", 0
		if pg, ok := game.(packGame); ok {
			packID, words = pg.PackID(), pg.WordsMatched()
		}
		//nolint:errcheck // Best-effort save
		r.store.SaveScore(game.ID(), packID, res.State.Score, words)
		r.saved = true
	}
}

// reset prepares for a new game.
func (r *recorder) reset() {
	r.saved = false
}
