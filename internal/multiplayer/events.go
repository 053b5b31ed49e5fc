package multiplayer

// SessionEvent represents an event sent from the matchmaker to a session.
type SessionEvent interface {
	sessionEvent()
}

// SearchingEvent confirms that a session is queued for a pack.
type SearchingEvent struct {
	PackID string
}

func (SearchingEvent) sessionEvent() {}

// MatchedEvent is sent to both players when a race starts. Both boards use
// the same pack and seed, so they see the same letter stream.
type MatchedEvent struct {
	RaceID       RaceID
	PackID       string
	Seed         int64
	Opponent     SessionID
	OpponentName string
}

func (MatchedEvent) sessionEvent() {}

// OpponentDetailsEvent relays the opponent's latest progress.
type OpponentDetailsEvent struct {
	RaceID  RaceID
	Details Details
}

func (OpponentDetailsEvent) sessionEvent() {}

// RaceEndedEvent is sent to both players when the race ends.
type RaceEndedEvent struct {
	RaceID RaceID
	Reason EndReason
	Winner SessionID // Empty on a draw
	You    int
	Them   int
}

func (RaceEndedEvent) sessionEvent() {}

// Won reports whether the receiving session won.
func (e RaceEndedEvent) Won(self SessionID) bool {
	return e.Winner != "" && e.Winner == self
}

// ErrorEvent reports a rejected request.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) sessionEvent() {}

// Message represents a message from a session to the matchmaker.
type Message interface {
	matchmakerMessage()
}

// SearchMsg queues a session for a race on the given pack.
type SearchMsg struct {
	SessionID SessionID
	PackID    string
}

func (SearchMsg) matchmakerMessage() {}

// CancelSearchMsg removes a session from the queue.
type CancelSearchMsg struct {
	SessionID SessionID
}

func (CancelSearchMsg) matchmakerMessage() {}

// DetailsMsg reports the sender's progress in its race.
type DetailsMsg struct {
	SessionID SessionID
	Details   Details
}

func (DetailsMsg) matchmakerMessage() {}

// LeaveMsg forfeits the sender's race.
type LeaveMsg struct {
	SessionID SessionID
}

func (LeaveMsg) matchmakerMessage() {}

// SessionDisconnectedMsg is sent when a session's connection closes.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) matchmakerMessage() {}
