package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/multiplayer"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func startMatchmaker(t *testing.T, names ...string) (*multiplayer.Matchmaker, []*multiplayer.ChannelSession) {
	t.Helper()
	reg := multiplayer.NewSessionRegistry()
	mm := multiplayer.NewMatchmaker(multiplayer.DefaultMatchmakerConfig(), reg)
	mm.Start()
	t.Cleanup(mm.Stop)

	sessions := make([]*multiplayer.ChannelSession, len(names))
	for i, name := range names {
		sessions[i] = multiplayer.NewChannelSession(multiplayer.SessionID(name), name, 16)
		reg.Register(sessions[i])
	}
	return mm, sessions
}

// await returns the next event of type T, skipping others.
func await[T multiplayer.SessionEvent](t *testing.T, s *multiplayer.ChannelSession) T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if v, ok := evt.(T); ok {
				return v
			}
		case <-deadline:
			var zero T
			t.Fatalf("session %s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

func update(t *testing.T, m RaceModel, msg tea.Msg) RaceModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(RaceModel)
}

func TestRaceLifecycle(t *testing.T) {
	mm, s := startMatchmaker(t, "ann", "bob")
	pack := words.Builtin()[0]

	ann := NewRaceModel(mm, s[0], pack, nil, testConfig())
	ann.Init()
	ann = update(t, ann, await[multiplayer.SearchingEvent](t, s[0]))
	if ann.State() != RaceSearching {
		t.Fatalf("State = %v, expected searching", ann.State())
	}
	if !strings.Contains(ann.View(), "Waiting for an opponent") {
		t.Error("lobby does not show the waiting message")
	}

	bob := NewRaceModel(mm, s[1], pack, nil, testConfig())
	bob.Init()

	ma := await[multiplayer.MatchedEvent](t, s[0])
	mb := await[multiplayer.MatchedEvent](t, s[1])
	if ma.Seed != mb.Seed || ma.PackID != pack.ID {
		t.Fatalf("matched events disagree: %+v vs %+v", ma, mb)
	}
	ann = update(t, ann, ma)
	bob = update(t, bob, mb)
	if ann.State() != RaceRunning || bob.State() != RaceRunning {
		t.Fatalf("states = %v/%v, expected running", ann.State(), bob.State())
	}

	ann = update(t, ann, TickMsg{})
	if !strings.Contains(ann.View(), "vs bob") {
		t.Error("status line does not name the opponent")
	}

	// Bob quits mid-race and forfeits
	bob = update(t, bob, keyMsg("q"))
	if !bob.IsQuitting() {
		t.Error("bob should be quitting")
	}

	ended := await[multiplayer.RaceEndedEvent](t, s[0])
	if ended.Reason != multiplayer.EndReasonLeft || !ended.Won("ann") {
		t.Errorf("RaceEndedEvent = %+v, expected ann to win by leave", ended)
	}
	ann = update(t, ann, ended)
	if ann.State() != RaceEnded {
		t.Fatalf("State = %v, expected ended", ann.State())
	}
	if !strings.Contains(ann.View(), "You win!") {
		t.Error("result line does not show the win")
	}

	ann = update(t, ann, keyMsg("esc"))
	if !ann.BackToMenu() {
		t.Error("Esc after the race should go back to the menu")
	}
}

func TestRaceIgnoresOtherRaces(t *testing.T) {
	mm, s := startMatchmaker(t, "ann")
	m := NewRaceModel(mm, s[0], words.Builtin()[0], nil, testConfig())

	m = update(t, m, multiplayer.RaceEndedEvent{RaceID: "other", Winner: "ann"})
	if m.State() != RaceSearching {
		t.Errorf("State = %v, expected searching after a foreign result", m.State())
	}
}

func TestRaceSearchFailure(t *testing.T) {
	mm, s := startMatchmaker(t, "ann")
	m := NewRaceModel(mm, s[0], words.Builtin()[0], nil, testConfig())

	m = update(t, m, multiplayer.ErrorEvent{Message: "already searching"})
	if m.State() != RaceFailed {
		t.Fatalf("State = %v, expected failed", m.State())
	}
	if !strings.Contains(m.View(), "already searching") {
		t.Error("lobby does not show the error")
	}

	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("Esc should go back to the menu")
	}
}

func TestRaceBackNeedsPause(t *testing.T) {
	mm, s := startMatchmaker(t, "ann")
	m := NewRaceModel(mm, s[0], words.Builtin()[0], nil, testConfig())
	m = update(t, m, multiplayer.MatchedEvent{RaceID: "r1", Seed: 7, Opponent: "bob", OpponentName: "bob"})

	m = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("Esc while playing should not leave the race")
	}

	m = update(t, m, keyMsg("p"))
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("Esc while paused should leave the race")
	}
}
