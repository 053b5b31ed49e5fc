package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/wordris/internal/core"
)

// ErrNoWords is returned by NewBoard when the target list is empty or holds
// an empty word.
var ErrNoWords = errors.New("engine: no target words")

// Phase is the drop scheduler state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingDrop
	PhaseFalling
	PhaseRemoving
	PhaseCascading
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingDrop:
		return "awaitingDrop"
	case PhaseFalling:
		return "falling"
	case PhaseRemoving:
		return "removing"
	case PhaseCascading:
		return "cascading"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Resolving reports whether matched tiles are being removed or cascaded.
func (p Phase) Resolving() bool {
	return p == PhaseRemoving || p == PhaseCascading
}

// Board is one game session: the grid, its tiles and the drop scheduler.
// A Board is not safe for concurrent use; the owner steps it from a single
// goroutine.
type Board struct {
	cfg         Config
	words       []string
	wordSymbols [][]Symbol
	colors      map[rune]core.Color
	rng         *rand.Rand
	listener    Listener

	tiles  []*Tile
	active *Tile
	nextID int
	next   Letter

	phase       Phase
	paused      bool
	countdown   int
	removing    []*Tile
	pending     int
	cascadeLeft int
	fallTicks   int
	ffStep      float64

	tick     uint64
	progress uint64
}

// NewBoard creates a session for the target words. Colors are assigned
// immediately; call Start to schedule the first drop.
func NewBoard(cfg Config, words []string, seed int64, l Listener) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	for _, w := range words {
		if w == "" {
			return nil, ErrNoWords
		}
	}
	if l == nil {
		l = NopListener{}
	}

	b := &Board{
		cfg:       cfg,
		words:     append([]string(nil), words...),
		rng:       rand.New(rand.NewSource(seed)),
		listener:  l,
		fallTicks: cfg.FallingTicks,
	}
	for _, w := range b.words {
		b.wordSymbols = append(b.wordSymbols, SymbolsOf(w))
	}

	colors, err := AssignColors(b.words, cfg.Colors, b.rng)
	if err != nil {
		return nil, fmt.Errorf("engine: assign colors for %d words: %w", len(words), err)
	}
	b.colors = colors
	return b, nil
}

// Config returns the board configuration.
func (b *Board) Config() Config { return b.cfg }

// Words returns the target words.
func (b *Board) Words() []string { return b.words }

// ColorOf returns the session color of a letter.
func (b *Board) ColorOf(r rune) core.Color { return b.colors[r] }

// Phase returns the scheduler state.
func (b *Board) Phase() Phase { return b.phase }

// Paused reports whether the active tile is frozen.
func (b *Board) Paused() bool { return b.paused }

// Active returns the falling tile, or nil.
func (b *Board) Active() *Tile { return b.active }

// Next returns the letter that will be spawned next.
func (b *Board) Next() Letter { return b.next }

// Tick returns the number of steps taken.
func (b *Board) Tick() uint64 { return b.tick }

// Progress increases on every state change; a board whose progress stops
// while it is neither idle, over, nor paused is stuck.
func (b *Board) Progress() uint64 { return b.progress }

// Tiles returns the live tiles in creation order.
func (b *Board) Tiles() []*Tile { return b.tiles }

// Start selects the first letter and schedules the first drop.
func (b *Board) Start() {
	if b.phase != PhaseIdle {
		return
	}
	b.next = b.pickNext()
	b.listener.NextLetter(b.next)
	b.countdown = b.cfg.FirstLetterDropDelayTicks + b.cfg.LetterDropDelayTicks
	b.setPhase(PhaseAwaitingDrop)
}

// Clear removes every tile and returns the board to idle.
func (b *Board) Clear() {
	for _, t := range b.tiles {
		t.State = StateRemoved
	}
	b.tiles = nil
	b.active = nil
	b.removing = nil
	b.pending = 0
	b.paused = false
	b.countdown = 0
	b.cascadeLeft = 0
	b.setPhase(PhaseIdle)
}

// SetPaused freezes or releases the active tile. Removal, cascade and drop
// delays keep running; a tile spawned while paused starts frozen.
func (b *Board) SetPaused(paused bool) {
	b.paused = paused
}

// SetFallingTicks changes how long a tile takes to fall the full board.
func (b *Board) SetFallingTicks(ticks int) {
	if ticks > 0 {
		b.fallTicks = ticks
	}
}

// MoveActive shifts the active tile by dx columns. It refuses to leave the
// board, to enter a column where a settled tile overlaps it, and to move a
// paused or fast-forwarding tile.
func (b *Board) MoveActive(dx int) bool {
	t := b.active
	if t == nil || b.paused || t.State != StateFalling || dx == 0 {
		return false
	}
	column := t.Column + dx
	if column < 1 || column > b.cfg.Columns {
		return false
	}
	for _, o := range b.tiles {
		if o == t || o.Column != column {
			continue
		}
		if o.Top < t.Top+b.cfg.CellSize && o.Top+b.cfg.CellSize > t.Top {
			return false
		}
	}
	t.Column = column
	b.progress++
	return true
}

// FastForward sends the active tile straight down to its landing spot.
func (b *Board) FastForward() bool {
	t := b.active
	if t == nil || b.paused || t.State != StateFalling {
		return false
	}
	t.State = StateFastForwarding
	b.ffStep = (b.landingTop(t.Column) - t.Top) / float64(b.cfg.FastForwardTicks)
	b.progress++
	return true
}

// Step advances the board by one tick.
func (b *Board) Step() {
	b.tick++
	switch b.phase {
	case PhaseAwaitingDrop:
		b.countdown--
		if b.countdown <= 0 {
			b.spawn()
		}
		b.progress++
	case PhaseFalling:
		b.advanceActive()
	case PhaseRemoving:
		b.advanceRemoval()
	case PhaseCascading:
		b.advanceCascade()
	}
}

func (b *Board) setPhase(p Phase) {
	b.phase = p
	b.progress++
}

func (b *Board) pickNext() Letter {
	var settled []rune
	for _, t := range b.tiles {
		if t.Settled() {
			settled = append(settled, t.Letter)
		}
	}
	r := NextLetter(b.words, settled, b.cfg.EasyDifficultyValue, b.rng)
	return Letter{Rune: r, Color: b.colors[r]}
}

// spawn drops the preselected letter at the top of the middle column and
// preselects the one after it. It is a no-op once the game is lost or while
// a tile is already active.
func (b *Board) spawn() {
	if b.phase == PhaseGameOver || b.active != nil {
		return
	}
	b.nextID++
	t := newTile(b.nextID, b.next, b.cfg.MiddleColumn())
	b.tiles = append(b.tiles, t)
	b.active = t
	b.setPhase(PhaseFalling)

	b.next = b.pickNext()
	b.listener.NextLetter(b.next)
}

func (b *Board) advanceActive() {
	t := b.active
	if t == nil || b.paused {
		return
	}
	step := b.cfg.Height() / float64(b.fallTicks)
	if t.State == StateFastForwarding {
		step = b.ffStep
	}
	landing := b.landingTop(t.Column)
	t.Top += step
	b.progress++
	if t.Top >= landing {
		t.Top = landing
		b.settle(t)
	}
}

func (b *Board) settle(t *Tile) {
	t.State = StateSettled
	b.active = nil
	b.ffStep = 0
	b.listener.TileSettled(*t)
	b.check()
}

// check scans the grid. Matches start a removal batch; otherwise the next
// drop is scheduled.
func (b *Board) check() {
	res := b.Scan()
	if res.Empty() {
		b.dropNext()
		return
	}
	res.apply(b.cfg.RemovalTicks)
	b.removing = res.Tiles
	b.pending = len(res.Tiles)
	b.setPhase(PhaseRemoving)
	b.listener.WordsMatched(res.Words)
}

// dropNext ends the game when the middle column is full and otherwise waits
// the drop delay before spawning.
func (b *Board) dropNext() {
	if b.ColumnCount(b.cfg.MiddleColumn()) >= b.cfg.Rows {
		b.gameOver()
		return
	}
	b.countdown = b.cfg.LetterDropDelayTicks
	b.setPhase(PhaseAwaitingDrop)
	if b.countdown <= 0 {
		b.spawn()
	}
}

func (b *Board) gameOver() {
	if b.phase == PhaseGameOver {
		return
	}
	b.setPhase(PhaseGameOver)
	b.listener.GameOver()
}

func (b *Board) advanceRemoval() {
	for _, t := range b.removing {
		if t.State != StateMatchedPendingRemoval {
			continue
		}
		if t.stepRemoval() {
			t.State = StateRemoved
			b.pending--
		}
	}
	b.progress++
	if b.pending > 0 {
		return
	}
	b.finishRemoval()
}

// finishRemoval runs once the whole batch has completed. Each removed tile
// leaves the board, and the settled tiles above it in its column are
// collected for the cascade.
func (b *Board) finishRemoval() {
	batch := b.removing
	b.removing = nil

	seen := make(map[int]bool)
	var mustFall []*Tile
	for _, gone := range batch {
		b.remove(gone)
		for _, t := range b.tiles {
			if t.Column != gone.Column || t.Top >= gone.Top || !t.Settled() || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			mustFall = append(mustFall, t)
		}
	}

	if len(mustFall) == 0 {
		b.dropNext()
		return
	}
	b.startCascade(b.PlanCascade(mustFall))
}

func (b *Board) remove(t *Tile) {
	for i, o := range b.tiles {
		if o == t {
			b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
			return
		}
	}
}
