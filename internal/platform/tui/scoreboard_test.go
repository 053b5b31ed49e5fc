package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/wordris/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardShowsScoresAndWords(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("wordris", "animals", 120, 4); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if err := store.RecordMatchedWords("wordris", []string{"CAT", "CAT", "DOG"}); err != nil {
		t.Fatalf("RecordMatchedWords() failed: %v", err)
	}

	view := NewScoreboardModel(store, 100, 24).View()
	for _, want := range []string{"HIGH SCORES", "120", "animals", "Top words", "CAT"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard view missing %q", want)
		}
	}
}

func TestScoreboardRaces(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveRace(storage.RaceResult{
		RaceID:        "r1",
		PackID:        "colors",
		Player1:       "s1",
		Player2:       "s2",
		Score1:        30,
		Score2:        60,
		WinnerSession: "s2",
		EndReason:     "completed",
		Duration:      90 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveRace() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 24)
	next, _ := m.Update(keyMsg("h")) // wraps around to the race log
	m = next.(ScoreboardModel)

	view := m.View()
	for _, want := range []string{"RECENT RACES", "colors", "30 : 60", "P2 won"} {
		if !strings.Contains(view, want) {
			t.Errorf("race view missing %q", want)
		}
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say there are no scores")
	}

	next, _ := m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("Esc should go back")
	}
}

func TestRaceOutcome(t *testing.T) {
	tests := []struct {
		winner   string
		expected string
	}{
		{"", "Draw"},
		{"a", "P1 won"},
		{"b", "P2 won"},
	}
	for _, tc := range tests {
		got := raceOutcome(storage.RaceResult{Player1: "a", Player2: "b", WinnerSession: tc.winner})
		if got != tc.expected {
			t.Errorf("raceOutcome(%q) = %q, expected %q", tc.winner, got, tc.expected)
		}
	}
}
