package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/multiplayer"
	"github.com/vovakirdan/wordris/internal/storage"
)

// RaceState is the phase of a race from one player's side.
type RaceState int

const (
	RaceSearching RaceState = iota // Queued, waiting for an opponent
	RaceRunning                     // Both players are playing
	RaceEnded                       // Result is in
	RaceFailed                      // Search rejected or timed out
)

// statusHeight is the line under the board that shows the opponent.
const statusHeight = 1

// RaceModel runs one race against another player. Matchmaker events are
// delivered to Update by the owning session, which pumps the session's
// event channel.
type RaceModel struct {
	state      RaceState
	matchmaker *multiplayer.Matchmaker
	session    multiplayer.SessionHandle
	pack       words.Pack
	config     core.RuntimeConfig
	recorder   *recorder
	keyMapper  *KeyMapper

	game       *wordris.Game
	screen     *core.Screen
	inputFrame core.InputFrame
	gameState  core.GameState

	raceID       multiplayer.RaceID
	opponentName string
	opponent     multiplayer.Details
	sent         multiplayer.Details
	result       *multiplayer.RaceEndedEvent
	message      string

	backToMenu bool
	quitting   bool
}

// NewRaceModel creates a race model for the given pack.
func NewRaceModel(mm *multiplayer.Matchmaker, session multiplayer.SessionHandle, pack words.Pack, store *storage.Store, cfg core.RuntimeConfig) RaceModel {
	return RaceModel{
		state:      RaceSearching,
		matchmaker: mm,
		session:    session,
		pack:       pack,
		config:     cfg,
		recorder:   &recorder{store: store},
		keyMapper:  NewKeyMapper(),
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-statusHeight, 1)),
		inputFrame: core.NewInputFrame(),
	}
}

// Init queues the player for the pack.
func (m RaceModel) Init() tea.Cmd {
	m.matchmaker.Send(multiplayer.SearchMsg{SessionID: m.session.ID(), PackID: m.pack.ID})
	return nil
}

// Update handles messages.
func (m RaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-statusHeight, 1))
		if m.game != nil {
			m.game.Resize(msg.Width, core.Max(msg.Height-statusHeight, 1))
		}
		return m, nil

	case TickMsg:
		return m.handleTick()

	case multiplayer.SearchingEvent:
		m.message = "Waiting for an opponent on " + m.pack.Name + "..."
		return m, nil

	case multiplayer.MatchedEvent:
		return m.startRace(msg)

	case multiplayer.OpponentDetailsEvent:
		if msg.RaceID == m.raceID {
			m.opponent = msg.Details
		}
		return m, nil

	case multiplayer.RaceEndedEvent:
		if msg.RaceID == m.raceID {
			m.result = &msg
			m.state = RaceEnded
		}
		return m, nil

	case multiplayer.ErrorEvent:
		m.message = msg.Message
		if m.state == RaceSearching {
			m.state = RaceFailed
		}
		return m, nil
	}
	return m, nil
}

func (m RaceModel) startRace(evt multiplayer.MatchedEvent) (tea.Model, tea.Cmd) {
	if m.state != RaceSearching {
		return m, nil
	}

	m.raceID = evt.RaceID
	m.opponentName = evt.OpponentName
	m.state = RaceRunning

	cfg := m.config
	cfg.Seed = evt.Seed
	cfg.ScreenH = core.Max(cfg.ScreenH-statusHeight, 1)
	m.game = wordris.NewForRace(m.pack)
	m.game.Reset(cfg)
	m.gameState = m.game.State()

	return m, tickCmd(m.config.TickRate)
}

// handleKey processes keyboard input for each race state.
func (m RaceModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	id := m.session.ID()

	if isQuit {
		m.leave(id)
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case RaceSearching, RaceFailed, RaceEnded:
		if action == core.ActionBack || msg.String() == "enter" {
			m.leave(id)
			m.backToMenu = true
		}
	case RaceRunning:
		switch action {
		case core.ActionBack:
			// Leaving mid-race forfeits; only allowed when stopped
			if m.gameState.Paused {
				m.leave(id)
				m.backToMenu = true
			}
		case core.ActionRestart, core.ActionNone:
		default:
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

// leave tells the matchmaker the player is gone from the current state.
func (m RaceModel) leave(id multiplayer.SessionID) {
	switch m.state {
	case RaceSearching:
		m.matchmaker.Send(multiplayer.CancelSearchMsg{SessionID: id})
	case RaceRunning:
		m.matchmaker.Send(multiplayer.LeaveMsg{SessionID: id})
	}
}

// handleTick steps the board and reports progress to the opponent.
func (m RaceModel) handleTick() (tea.Model, tea.Cmd) {
	if m.state != RaceRunning || m.game == nil || m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recorder.observe(m.game, result)
	m.inputFrame.Clear()

	details := multiplayer.Details{
		Score:    result.State.Score,
		Words:    m.game.WordsMatched(),
		GameOver: result.State.GameOver,
	}
	if details != m.sent {
		m.sent = details
		m.matchmaker.Send(multiplayer.DetailsMsg{SessionID: m.session.ID(), Details: details})
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the race.
func (m RaceModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	switch m.state {
	case RaceSearching, RaceFailed:
		return m.viewLobby()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m RaceModel) viewLobby() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R A C E"), m.config.ScreenW))
	b.WriteString("\n\n")

	msg := m.message
	if msg == "" {
		msg = "Looking for an opponent..."
	}
	if m.state == RaceFailed {
		msg = errorStyle.Render(msg)
	}
	b.WriteString(centerText(msg, m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Pack: "+strings.Join(m.pack.Words, " ")), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Back  |  Q: Quit", m.config.ScreenW))
	return b.String()
}

func (m RaceModel) statusLine() string {
	if m.state == RaceEnded && m.result != nil {
		var outcome string
		switch {
		case m.result.Winner == "":
			outcome = "Draw"
		case m.result.Won(m.session.ID()):
			outcome = selectedStyle.Render("You win!")
		default:
			outcome = errorStyle.Render("You lose")
		}
		return fmt.Sprintf(" %s  %d : %d vs %s (%s)  |  Esc: Menu",
			outcome, m.result.You, m.result.Them, m.opponentName, m.result.Reason)
	}

	them := fmt.Sprintf("%d (%d words)", m.opponent.Score, m.opponent.Words)
	if m.opponent.GameOver {
		them += " finished"
	}
	return dimStyle.Render(fmt.Sprintf(" vs %s: %s", m.opponentName, them))
}

// State returns the race phase.
func (m RaceModel) State() RaceState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m RaceModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m RaceModel) BackToMenu() bool {
	return m.backToMenu
}
