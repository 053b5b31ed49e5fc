package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordris/internal/games/wordris/words"
)

func send(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionStartsGame(t *testing.T) {
	m := NewSessionModel(nil, words.Builtin(), nil, nil, testConfig())

	m = send(m, keyMsg("enter"))
	if m.current != screenGame {
		t.Fatalf("current = %v, expected game", m.current)
	}
	m = send(m, TickMsg{})
	if !strings.Contains(m.View(), "Wordris") {
		t.Error("game view does not show the HUD")
	}

	m = send(m, keyMsg("q"))
	if !m.quitting {
		t.Error("q should quit the session")
	}
}

func TestSessionEndlessAsksForPack(t *testing.T) {
	packs := words.Builtin()
	m := NewSessionModel(nil, packs, nil, nil, testConfig())

	m = send(m, keyMsg("down"), keyMsg("enter"))
	if m.current != screenMenu {
		t.Fatalf("current = %v, expected pack selection in the menu", m.current)
	}

	m = send(m, keyMsg("down"), keyMsg("enter"))
	if m.current != screenGame {
		t.Fatalf("current = %v, expected game", m.current)
	}
	m = send(m, TickMsg{})
	if !strings.Contains(m.View(), packs[1].Name) {
		t.Errorf("endless game is not on pack %q", packs[1].Name)
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	m := NewSessionModel(nil, words.Builtin(), nil, nil, testConfig())

	m = send(m, keyMsg("tab"))
	if m.current != screenScores {
		t.Fatalf("current = %v, expected scores", m.current)
	}

	m = send(m, keyMsg("esc"))
	if m.current != screenMenu {
		t.Errorf("current = %v, expected menu after Esc", m.current)
	}
}

func TestSessionHidesRaceWithoutMatchmaker(t *testing.T) {
	m := NewSessionModel(nil, words.Builtin(), nil, nil, testConfig())
	if strings.Contains(m.View(), "Race") {
		t.Error("menu offers a race without a matchmaker")
	}
}
