package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/multiplayer"
	"github.com/vovakirdan/wordris/internal/registry"
	"github.com/vovakirdan/wordris/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.wordris/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// PackDir is searched for custom word packs besides the built-in ones.
	PackDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Logger receives server events. A default stderr logger is used if nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.wordris/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. All players share one matchmaker, so
// any two SSH players can race each other.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	store      *storage.Store
	packs      []words.Pack
	sessions   *multiplayer.SessionRegistry
	matchmaker *multiplayer.Matchmaker
	logger     *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "wordris-ssh",
		})
	}

	packs, err := words.Available(cfg.PackDir)
	if err != nil {
		return nil, fmt.Errorf("cannot load word packs: %w", err)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil // Continue without storage
	}

	sessions := multiplayer.NewSessionRegistry()
	mm := multiplayer.NewMatchmaker(multiplayer.DefaultMatchmakerConfig(), sessions)
	if store != nil {
		mm.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:     cfg,
		store:      store,
		packs:      packs,
		sessions:   sessions,
		matchmaker: mm,
		logger:     logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".wordris", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session and
// registers the player with the matchmaker until the connection closes.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: core.DefaultConfig().TickRate,
		Seed:     time.Now().UnixNano(),
	}

	player := multiplayer.NewChannelSession(multiplayer.NewSessionID(), sshSession.User(), 64)
	s.sessions.Register(player)
	go func() {
		<-sshSession.Context().Done()
		s.matchmaker.Send(multiplayer.SessionDisconnectedMsg{SessionID: player.ID()})
		s.sessions.Unregister(player.ID())
		player.Close()
	}()

	model := NewSessionModel(s.store, s.packs, s.matchmaker, player, cfg)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "packs", len(s.packs))
	s.matchmaker.Start()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.matchmaker.Stop()
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// screen is the part of the session currently shown.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenRace
	screenScores
)

// SessionModel manages one player's flow: menu, then a game, a race or
// the scoreboard, then back to the menu.
type SessionModel struct {
	store      *storage.Store
	packs      []words.Pack
	matchmaker *multiplayer.Matchmaker
	player     *multiplayer.ChannelSession
	config     core.RuntimeConfig

	current    screen
	menu       MenuModel
	game       Model
	race       RaceModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. A nil matchmaker hides
// the race entry.
func NewSessionModel(
	store *storage.Store,
	packs []words.Pack,
	mm *multiplayer.Matchmaker,
	player *multiplayer.ChannelSession,
	cfg core.RuntimeConfig,
) SessionModel {
	return SessionModel{
		store:      store,
		packs:      packs,
		matchmaker: mm,
		player:     player,
		config:     cfg,
		menu:       NewMenuModel(cfg, packs, mm != nil && player != nil),
	}
}

// Init starts the menu and the matchmaker event pump.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.waitForEvent())
}

// waitForEvent returns a command that waits for the next matchmaker event.
func (m SessionModel) waitForEvent() tea.Cmd {
	if m.player == nil {
		return nil
	}
	events, done := m.player.Events(), m.player.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return nil
		}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		var cmd tea.Cmd
		if m.current == screenRace {
			var updated tea.Model
			updated, cmd = m.race.Update(evt)
			m.race = updated.(RaceModel)
		}
		return m, tea.Batch(cmd, m.waitForEvent())
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenRace:
		return m.updateRace(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Kind {
	case ItemScores:
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scoreboard.Init()

	case ItemRace:
		pack, ok := m.findPack(m.menu.Pack())
		if !ok {
			return m.toMenu()
		}
		m.race = NewRaceModel(m.matchmaker, m.player, pack, m.store, m.config)
		m.current = screenRace
		return m, m.race.Init()
	}

	game, err := m.createGame(selected.GameID, m.menu.Pack())
	if err != nil {
		return m.toMenu()
	}
	m.config.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.store, m.config)
	m.current = screenGame
	return m, m.game.Init()
}

// createGame builds a game for the session. Endless games get their pack
// fixed at creation, since the package-level pack selection is shared by
// every SSH session.
func (m SessionModel) createGame(gameID, packID string) (registry.Game, error) {
	if packID != "" {
		if pack, ok := m.findPack(packID); ok {
			return wordris.NewForPack(pack), nil
		}
	}
	return registry.Create(gameID)
}

func (m SessionModel) findPack(id string) (words.Pack, bool) {
	for _, p := range m.packs {
		if p.ID == id {
			return p, true
		}
	}
	return words.Pack{}, false
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.config, m.packs, m.matchmaker != nil && m.player != nil)
	return m, m.menu.Init()
}

// updateGame handles updates when in game mode. The game model quits its
// program on exit, so its commands are dropped once it is done.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	m.game = updated.(Model)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.config = m.game.Config()
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateRace(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.race.Update(msg)
	m.race = updated.(RaceModel)

	switch {
	case m.race.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.race.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scoreboard.Update(msg)
	m.scoreboard = updated.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenRace:
		return m.race.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
