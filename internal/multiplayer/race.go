package multiplayer

import "time"

// Race is an active head-to-head game. Both players drop letters from the
// same pack and seed; only their progress is relayed.
type Race struct {
	ID        RaceID
	PackID    string
	Seed      int64
	StartedAt time.Time

	players [2]racer
}

type racer struct {
	session SessionHandle
	details Details
}

func newRace(packID string, seed int64, first, second SessionHandle, now time.Time) *Race {
	return &Race{
		ID:        newRaceID(),
		PackID:    packID,
		Seed:      seed,
		StartedAt: now,
		players:   [2]racer{{session: first}, {session: second}},
	}
}

// Players returns the session IDs in the order they were matched.
func (r *Race) Players() [2]SessionID {
	return [2]SessionID{r.players[0].session.ID(), r.players[1].session.ID()}
}

// Details returns the last progress reported by a player.
func (r *Race) Details(id SessionID) (Details, bool) {
	side := r.side(id)
	if side < 0 {
		return Details{}, false
	}
	return r.players[side].details, true
}

func (r *Race) side(id SessionID) int {
	for i, p := range r.players {
		if p.session.ID() == id {
			return i
		}
	}
	return -1
}

// report stores a player's progress and returns the opponent's session
// with the progress as stored.
func (r *Race) report(id SessionID, d Details) (SessionHandle, Details, bool) {
	side := r.side(id)
	if side < 0 {
		return nil, Details{}, false
	}
	// Scores never go down; a late or reordered update keeps the best seen.
	if d.Score < r.players[side].details.Score {
		d.Score = r.players[side].details.Score
	}
	r.players[side].details = d
	return r.players[1-side].session, d, true
}

// winner decides the race. A player who leaves or drops forfeits; otherwise
// the higher score wins and a tie is a draw.
func (r *Race) winner(reason EndReason, quitter SessionID) SessionID {
	if reason != EndReasonCompleted {
		if side := r.side(quitter); side >= 0 {
			return r.players[1-side].session.ID()
		}
		return ""
	}
	a, b := r.players[0].details.Score, r.players[1].details.Score
	switch {
	case a > b:
		return r.players[0].session.ID()
	case b > a:
		return r.players[1].session.ID()
	default:
		return ""
	}
}

func (r *Race) result(reason EndReason, winner SessionID, now time.Time) RaceResultData {
	return RaceResultData{
		RaceID:        string(r.ID),
		PackID:        r.PackID,
		Player1:       string(r.players[0].session.ID()),
		Player2:       string(r.players[1].session.ID()),
		Score1:        r.players[0].details.Score,
		Score2:        r.players[1].details.Score,
		WinnerSession: string(winner),
		EndReason:     reason.String(),
		Duration:      now.Sub(r.StartedAt),
	}
}
