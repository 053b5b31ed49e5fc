// Package wordris adapts the falling-letter board to the platform's game
// interface: it loads the configuration and word packs, maps actions onto
// the board, keeps score and draws the board with its side panel.
package wordris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/wordris/internal/config"
	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign" // Play through every pack in order
	ModeEndless  Mode = "endless"  // One pack until the middle column fills
)

// packClearFrames is how long the "pack clear" banner stays up.
const packClearFrames = 90

// Event prefixes reported in StepResult.Events.
const (
	EventMatch    = "match:"
	EventPack     = "pack:"
	EventGameOver = "gameover"
)

// Package-level settings applied on the next Reset, set via CLI flags.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	packDir          string
	selectedPack     string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty keeps the file's settings.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = config.ParsePreset(preset)
}

// SetPackDir sets the directory searched for custom word packs.
func SetPackDir(dir string) {
	packDir = dir
}

// SetPack selects the pack to play (endless) or to start from (campaign).
func SetPack(id string) {
	selectedPack = id
}

// SelectedPack returns the currently selected pack ID.
func SelectedPack() string {
	return selectedPack
}

// Game implements registry.Game for Wordris.
type Game struct {
	mode   Mode
	fixed  *words.Pack // Always play this pack
	steady bool        // No speed progression

	// Configuration
	cfg        config.WordrisConfig
	base       engine.Config
	difficulty *config.DifficultyManager
	tickRate   int

	// Pack progression
	packs     []words.Pack
	packIndex int
	board     *engine.Board
	matched   map[string]int // Completions per target word in the current pack

	// Game state
	rng        *rand.Rand
	tick       uint64
	score      int
	wordsTotal int
	chain      int // Scans since the last settle; 1 for the first
	fallTicks  int
	events     []string
	err        error

	screenW int
	screenH int

	gameOver       bool
	won            bool
	paused         bool
	tooSmall       bool
	packCleared    bool
	packClearTicks int
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewForPack creates an endless game on a fixed pack.
func NewForPack(p words.Pack) *Game {
	return &Game{mode: ModeEndless, fixed: &p}
}

// NewForRace creates an endless game for a race. Both players see the same
// words, and the fall speed stays at the starting level so that a higher
// score never makes one board harder than the other.
func NewForRace(p words.Pack) *Game {
	return &Game{mode: ModeEndless, fixed: &p, steady: true}
}

func init() {
	registry.Register("wordris", func() registry.Game {
		return New()
	})
	registry.Register("wordris_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "wordris_endless"
	}
	return "wordris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Wordris (Endless)"
	}
	return "Wordris"
}

// Description implements registry.Describer.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "One word pack, play until the middle column fills"
	}
	return "Clear every word pack in turn"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadWordris(configPath)
	if err != nil {
		cfg = config.DefaultWordrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyWordrisPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.steady {
		g.difficulty.SetEnabled(false)
	}

	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tick = 0
	g.score = 0
	g.wordsTotal = 0
	g.events = nil
	g.err = nil
	g.gameOver = false
	g.won = false
	g.paused = false
	g.packCleared = false
	g.packClearTicks = 0
	g.board = nil

	g.base, err = cfg.EngineConfig(g.tickRate)
	if err != nil {
		g.fail(err)
		return
	}

	if err := g.loadPacks(); err != nil {
		g.fail(err)
		return
	}

	g.tooSmall = g.screenW < g.minWidth() || g.screenH < g.minHeight()
	g.loadPack()
}

// loadPacks resolves the pack list for the mode.
func (g *Game) loadPacks() error {
	if g.fixed != nil {
		g.packs = []words.Pack{*g.fixed}
		g.packIndex = 0
		return nil
	}

	packs, err := words.Available(packDir)
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		return words.ErrPackNotFound
	}

	g.packIndex = 0
	if selectedPack != "" {
		found := false
		for i, p := range packs {
			if p.ID == selectedPack {
				g.packIndex = i
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", words.ErrPackNotFound, selectedPack)
		}
	}

	if g.mode == ModeEndless {
		packs = packs[g.packIndex : g.packIndex+1]
		g.packIndex = 0
	}
	g.packs = packs
	return nil
}

// loadPack builds a fresh board for the current pack.
func (g *Game) loadPack() {
	pack := g.packs[g.packIndex]
	bc, err := words.Prepare(pack, g.base)
	if err != nil {
		g.fail(err)
		return
	}

	board, err := engine.NewBoard(bc, pack.Words, g.rng.Int63(), engine.ListenerFuncs{
		OnWordsMatched: g.onWordsMatched,
		OnGameOver:     g.onGameOver,
		OnTileSettled:  func(engine.Tile) { g.chain = 0 },
	})
	if err != nil {
		g.fail(err)
		return
	}

	g.board = board
	g.matched = make(map[string]int, len(pack.Words))
	g.fallTicks = bc.FallingTicks
	g.chain = 0
	g.packCleared = false
	g.packClearTicks = 0
	g.paused = false
	board.Start()
}

func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
}

func (g *Game) onWordsMatched(matched []string) {
	g.chain++
	for _, w := range matched {
		g.score += g.points(w, g.chain)
		g.matched[w]++
		g.wordsTotal++
		g.events = append(g.events, EventMatch+w)
	}
}

func (g *Game) onGameOver() {
	g.gameOver = true
	g.events = append(g.events, EventGameOver)
}

// points scores one word found on the given scan of a resolution.
func (g *Game) points(word string, chain int) int {
	mult := 1 + (chain-1)*g.cfg.Scoring.ChainBonus
	if mult < 1 {
		mult = 1
	}
	return len([]rune(word)) * g.cfg.Scoring.PointsPerLetter * mult
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	// Handle restart
	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won || g.tooSmall || g.board == nil {
		return g.result()
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
		g.board.SetPaused(g.paused)
	}

	// Handle pack clear banner
	if g.packCleared {
		g.packClearTicks++
		if g.packClearTicks >= packClearFrames {
			g.advancePack()
		}
		return g.result()
	}

	g.processInput(input)
	g.updateSpeed()
	g.board.Step()

	if g.mode == ModeCampaign && !g.gameOver && g.board.Phase() == engine.PhaseAwaitingDrop && g.allMatched() {
		g.packCleared = true
		g.packClearTicks = 0
		g.events = append(g.events, EventPack+g.Pack().ID)
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// processInput maps actions onto the active tile. Column 1 is drawn on the
// right so rows read left to right on screen; moving left raises the column.
func (g *Game) processInput(input core.InputFrame) {
	switch {
	case input.Has(core.ActionLeft):
		g.board.MoveActive(1)
	case input.Has(core.ActionRight):
		g.board.MoveActive(-1)
	}
	if input.Has(core.ActionDrop) {
		g.board.FastForward()
	}
}

// updateSpeed shortens the fall as the difficulty rises.
func (g *Game) updateSpeed() {
	d := g.difficulty.FallingDuration(g.cfg.Timing.FallingDuration, g.score, int(g.tick))
	ticks := engine.TicksFor(d.Milliseconds(), g.tickRate)
	if ticks > 0 && ticks != g.fallTicks {
		g.fallTicks = ticks
		g.board.SetFallingTicks(ticks)
	}
}

func (g *Game) allMatched() bool {
	for _, w := range g.Pack().Words {
		if g.matched[w] == 0 {
			return false
		}
	}
	return true
}

// advancePack moves to the next pack, or wins after the last one.
func (g *Game) advancePack() {
	g.packIndex++
	if g.packIndex >= len(g.packs) {
		g.won = true
		g.packCleared = false
		return
	}
	g.loadPack()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused,
	}
}

// Pack returns the pack being played.
func (g *Game) Pack() words.Pack {
	if len(g.packs) == 0 {
		return words.Pack{}
	}
	return g.packs[g.packIndex]
}

// PackID returns the ID of the pack being played.
func (g *Game) PackID() string {
	return g.Pack().ID
}

// WordsMatched returns the number of words completed this game.
func (g *Game) WordsMatched() int {
	return g.wordsTotal
}

// Err returns the error that stopped the game from starting, if any.
func (g *Game) Err() error {
	return g.err
}

// Board exposes the engine board, for the autoplayer and tests.
func (g *Game) Board() *engine.Board {
	return g.board
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→ A/D: Move | ↓/S/Space: Drop | P: Pause | R: Restart | Q: Quit"
}
