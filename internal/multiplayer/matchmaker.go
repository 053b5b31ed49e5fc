package multiplayer

import (
	"sync"
	"time"
)

// MatchmakerConfig holds configuration for the matchmaker.
type MatchmakerConfig struct {
	SearchTimeout time.Duration // How long a session may wait for an opponent
	CleanupPeriod time.Duration // How often to expire stale searches
}

// DefaultMatchmakerConfig returns sensible defaults.
func DefaultMatchmakerConfig() MatchmakerConfig {
	return MatchmakerConfig{
		SearchTimeout: 2 * time.Minute,
		CleanupPeriod: 15 * time.Second,
	}
}

type searcher struct {
	session SessionHandle
	packID  string
	since   time.Time
}

// Matchmaker queues searching sessions and runs their races.
type Matchmaker struct {
	config      MatchmakerConfig
	sessions    *SessionRegistry
	resultSaver RaceResultSaver // Optional, can be nil

	now  func() time.Time
	seed func() int64

	mu          sync.RWMutex
	queues      map[string][]*searcher // packID -> FIFO queue
	searching   map[SessionID]*searcher
	races       map[RaceID]*Race
	sessionRace map[SessionID]RaceID

	msgChan  chan Message
	done     chan struct{}
	stopOnce sync.Once
}

// NewMatchmaker creates a new matchmaker.
func NewMatchmaker(cfg MatchmakerConfig, sessions *SessionRegistry) *Matchmaker {
	return &Matchmaker{
		config:      cfg,
		sessions:    sessions,
		now:         time.Now,
		seed:        func() int64 { return time.Now().UnixNano() },
		queues:      make(map[string][]*searcher),
		searching:   make(map[SessionID]*searcher),
		races:       make(map[RaceID]*Race),
		sessionRace: make(map[SessionID]RaceID),
		msgChan:     make(chan Message, 256),
		done:        make(chan struct{}),
	}
}

// SetResultSaver sets the optional race result saver.
func (m *Matchmaker) SetResultSaver(saver RaceResultSaver) {
	m.resultSaver = saver
}

// Start begins the matchmaker's background processing.
func (m *Matchmaker) Start() {
	go m.processMessages()
	go m.cleanupLoop()
}

// Stop shuts down the matchmaker. Safe to call multiple times.
func (m *Matchmaker) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

// Send sends a message to the matchmaker for async processing.
func (m *Matchmaker) Send(msg Message) {
	select {
	case m.msgChan <- msg:
	case <-m.done:
	}
}

func (m *Matchmaker) processMessages() {
	for {
		select {
		case msg := <-m.msgChan:
			m.handleMessage(msg)
		case <-m.done:
			return
		}
	}
}

func (m *Matchmaker) handleMessage(msg Message) {
	switch msg := msg.(type) {
	case SearchMsg:
		m.handleSearch(msg)
	case CancelSearchMsg:
		m.mu.Lock()
		m.dequeue(msg.SessionID)
		m.mu.Unlock()
	case DetailsMsg:
		m.handleDetails(msg)
	case LeaveMsg:
		m.handleLeave(msg.SessionID, EndReasonLeft)
	case SessionDisconnectedMsg:
		m.mu.Lock()
		m.dequeue(msg.SessionID)
		m.mu.Unlock()
		m.handleLeave(msg.SessionID, EndReasonDisconnect)
	}
}

func (m *Matchmaker) handleSearch(msg SearchMsg) {
	session, ok := m.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, inRace := m.sessionRace[msg.SessionID]; inRace {
		session.Send(ErrorEvent{Message: "Already in a race"})
		return
	}
	if _, queued := m.searching[msg.SessionID]; queued {
		session.Send(ErrorEvent{Message: "Already searching"})
		return
	}

	if opponent := m.popOpponent(msg.PackID); opponent != nil {
		m.startRace(msg.PackID, opponent.session, session)
		return
	}

	s := &searcher{session: session, packID: msg.PackID, since: m.now()}
	m.queues[msg.PackID] = append(m.queues[msg.PackID], s)
	m.searching[msg.SessionID] = s
	session.Send(SearchingEvent{PackID: msg.PackID})
}

// popOpponent takes the longest-waiting live searcher for a pack.
// Must be called with lock held.
func (m *Matchmaker) popOpponent(packID string) *searcher {
	queue := m.queues[packID]
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		delete(m.searching, s.session.ID())
		select {
		case <-s.session.Done():
			continue
		default:
		}
		m.setQueue(packID, queue)
		return s
	}
	m.setQueue(packID, queue)
	return nil
}

// dequeue removes a session from its search queue.
// Must be called with lock held.
func (m *Matchmaker) dequeue(id SessionID) {
	s, ok := m.searching[id]
	if !ok {
		return
	}
	delete(m.searching, id)
	queue := m.queues[s.packID]
	for i, q := range queue {
		if q == s {
			queue = append(queue[:i:i], queue[i+1:]...)
			break
		}
	}
	m.setQueue(s.packID, queue)
}

func (m *Matchmaker) setQueue(packID string, queue []*searcher) {
	if len(queue) == 0 {
		delete(m.queues, packID)
		return
	}
	m.queues[packID] = queue
}

// startRace must be called with lock held.
func (m *Matchmaker) startRace(packID string, first, second SessionHandle) {
	race := newRace(packID, m.seed(), first, second, m.now())
	m.races[race.ID] = race
	m.sessionRace[first.ID()] = race.ID
	m.sessionRace[second.ID()] = race.ID

	first.Send(MatchedEvent{
		RaceID:       race.ID,
		PackID:       packID,
		Seed:         race.Seed,
		Opponent:     second.ID(),
		OpponentName: second.Name(),
	})
	second.Send(MatchedEvent{
		RaceID:       race.ID,
		PackID:       packID,
		Seed:         race.Seed,
		Opponent:     first.ID(),
		OpponentName: first.Name(),
	})
}

func (m *Matchmaker) handleDetails(msg DetailsMsg) {
	m.mu.Lock()
	defer m.mu.Unlock()

	race, ok := m.raceOf(msg.SessionID)
	if !ok {
		return
	}
	opponent, details, ok := race.report(msg.SessionID, msg.Details)
	if !ok {
		return
	}
	opponent.Send(OpponentDetailsEvent{RaceID: race.ID, Details: details})

	if details.GameOver {
		m.endRace(race, EndReasonCompleted, "")
	}
}

func (m *Matchmaker) handleLeave(id SessionID, reason EndReason) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if race, ok := m.raceOf(id); ok {
		m.endRace(race, reason, id)
	}
}

// raceOf must be called with lock held.
func (m *Matchmaker) raceOf(id SessionID) (*Race, bool) {
	raceID, ok := m.sessionRace[id]
	if !ok {
		return nil, false
	}
	race, ok := m.races[raceID]
	return race, ok
}

// endRace must be called with lock held.
func (m *Matchmaker) endRace(race *Race, reason EndReason, quitter SessionID) {
	winner := race.winner(reason, quitter)
	result := race.result(reason, winner, m.now())

	if m.resultSaver != nil {
		saver := m.resultSaver
		// Best effort save, don't block on error
		go func() {
			_ = saver.SaveRaceResult(result) //nolint:errcheck // intentional fire-and-forget
		}()
	}

	delete(m.races, race.ID)
	scores := [2]int{result.Score1, result.Score2}
	for i, p := range race.players {
		delete(m.sessionRace, p.session.ID())
		p.session.Send(RaceEndedEvent{
			RaceID: race.ID,
			Reason: reason,
			Winner: winner,
			You:    scores[i],
			Them:   scores[1-i],
		})
	}
}

func (m *Matchmaker) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSearches()
		case <-m.done:
			return
		}
	}
}

func (m *Matchmaker) expireSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, s := range m.searching {
		if now.Sub(s.since) > m.config.SearchTimeout {
			s.session.Send(ErrorEvent{Message: "No opponent found"})
			m.dequeue(id)
		}
	}
}

// QueueLength returns the number of sessions waiting for a pack.
func (m *Matchmaker) QueueLength(packID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.queues[packID])
}

// RaceCount returns the number of active races.
func (m *Matchmaker) RaceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.races)
}

// RaceOf returns the race a session is playing, for tests and status pages.
func (m *Matchmaker) RaceOf(id SessionID) (*Race, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.raceOf(id)
}
