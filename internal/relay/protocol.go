package relay

import (
	"encoding/json"

	"github.com/vovakirdan/wordris/internal/multiplayer"
)

// Message types carried in the "t" field of an envelope.
const (
	// Client to server
	TypeSearch  = "user:search"
	TypeCancel  = "user:cancel"
	TypeDetails = "details:set"
	TypeLeave   = "user:leave"
	TypePing    = "ping"

	// Server to client
	TypeSearching       = "user:searching"
	TypeMatched         = "user:matched"
	TypeOpponentDetails = "details:opponent"
	TypeRaceEnded       = "race:ended"
	TypeError           = "error"
	TypePong            = "pong"
)

// InMsg is an envelope received from a client.
type InMsg struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

// OutMsg is an envelope sent to a client.
type OutMsg struct {
	T     string `json:"t"`
	ReqID string `json:"reqId,omitempty"`
	P     any    `json:"p,omitempty"`
}

// SearchPayload asks to be matched on a pack.
type SearchPayload struct {
	Pack string `json:"pack"`
}

// DetailsPayload carries a player's progress. It is used in both
// directions: details:set from the player, details:opponent to the rival.
type DetailsPayload struct {
	Race  string `json:"race,omitempty"`
	Score int    `json:"score"`
	Words int    `json:"words"`
	Over  bool   `json:"over"`
}

// SearchingPayload confirms a queued search.
type SearchingPayload struct {
	Pack string `json:"pack"`
}

// MatchedPayload starts a race.
type MatchedPayload struct {
	Race         string `json:"race"`
	Pack         string `json:"pack"`
	Seed         int64  `json:"seed"`
	You          string `json:"you"`
	Opponent     string `json:"opponent"`
	OpponentName string `json:"opponentName"`
}

// RaceEndedPayload reports the outcome from the receiver's side.
type RaceEndedPayload struct {
	Race   string `json:"race"`
	Reason string `json:"reason"`
	Won    bool   `json:"won"`
	Draw   bool   `json:"draw"`
	You    int    `json:"you"`
	Them   int    `json:"them"`
}

// ErrPayload describes a rejected message.
type ErrPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// encodeEvent converts a matchmaker event into the envelope for self.
func encodeEvent(self multiplayer.SessionID, evt multiplayer.SessionEvent) (OutMsg, bool) {
	switch e := evt.(type) {
	case multiplayer.SearchingEvent:
		return OutMsg{T: TypeSearching, P: SearchingPayload{Pack: e.PackID}}, true
	case multiplayer.MatchedEvent:
		return OutMsg{T: TypeMatched, P: MatchedPayload{
			Race:         string(e.RaceID),
			Pack:         e.PackID,
			Seed:         e.Seed,
			You:          string(self),
			Opponent:     string(e.Opponent),
			OpponentName: e.OpponentName,
		}}, true
	case multiplayer.OpponentDetailsEvent:
		return OutMsg{T: TypeOpponentDetails, P: DetailsPayload{
			Race:  string(e.RaceID),
			Score: e.Details.Score,
			Words: e.Details.Words,
			Over:  e.Details.GameOver,
		}}, true
	case multiplayer.RaceEndedEvent:
		return OutMsg{T: TypeRaceEnded, P: RaceEndedPayload{
			Race:   string(e.RaceID),
			Reason: e.Reason.String(),
			Won:    e.Won(self),
			Draw:   e.Winner == "",
			You:    e.You,
			Them:   e.Them,
		}}, true
	case multiplayer.ErrorEvent:
		return OutMsg{T: TypeError, P: ErrPayload{Code: "REJECTED", Msg: e.Message}}, true
	}
	return OutMsg{}, false
}
