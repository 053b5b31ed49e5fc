// Package multiplayer pairs players into head-to-head Wordris races.
// Sessions announce themselves with a search, are matched first-come
// first-served per word pack, then relay their score to the opponent until
// one of them tops out or leaves. It is transport neutral: the SSH TUI and
// the websocket relay both talk to it through SessionHandle.
package multiplayer

import (
	"time"

	"github.com/google/uuid"
)

// SessionID uniquely identifies a player's connection (SSH session or websocket).
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// RaceID uniquely identifies a race between two sessions.
type RaceID string

func newRaceID() RaceID {
	return RaceID(uuid.NewString())
}

// Details is the progress a player reports during a race.
type Details struct {
	Score    int  `json:"score"`
	Words    int  `json:"words"`
	GameOver bool `json:"over"`
}

// EndReason describes why a race ended.
type EndReason int

const (
	EndReasonCompleted  EndReason = iota // A player topped out
	EndReasonLeft                        // A player left the race
	EndReasonDisconnect                  // A player's connection dropped
)

func (r EndReason) String() string {
	switch r {
	case EndReasonCompleted:
		return "completed"
	case EndReasonLeft:
		return "left"
	case EndReasonDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// RaceResultSaver persists finished races.
// This allows the matchmaker to save results without depending on the storage package.
type RaceResultSaver interface {
	SaveRaceResult(result RaceResultData) error
}

// RaceResultData contains race result data for persistence.
type RaceResultData struct {
	RaceID        string
	PackID        string
	Player1       string
	Player2       string
	Score1        int
	Score2        int
	WinnerSession string // Empty on a draw
	EndReason     string
	Duration      time.Duration
}
