package wordris

import "github.com/vovakirdan/wordris/internal/games/wordris/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePackCleared GameStateType = "pack_cleared"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	PackID    string
	PackIndex int
	Score     int
	Words     int
	FallTicks int
	State     GameStateType
	Board     engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.packCleared:
		state = StatePackCleared
	}

	s := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		PackID:    g.Pack().ID,
		PackIndex: g.packIndex,
		Score:     g.score,
		Words:     g.wordsTotal,
		FallTicks: g.fallTicks,
		State:     state,
	}
	if g.board != nil {
		s.Board = g.board.Snapshot()
	}
	return s
}
