package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrStalled is returned by Runner.Run when the simulation stops making
// progress outside of the idle, paused and game-over states.
var ErrStalled = errors.New("engine: game did not progress")

// DefaultStallTicks is the watchdog window used when Runner.StallTicks is 0.
const DefaultStallTicks = 600

// Simulation is the part of a Board a Runner needs.
type Simulation interface {
	Step()
	Phase() Phase
	Paused() bool
	Progress() uint64
}

// RunResult summarises a headless run.
type RunResult struct {
	Ticks    int
	GameOver bool
}

// Runner drives a simulation without a UI.
type Runner struct {
	Sim        Simulation
	StallTicks int
	// BeforeStep, when set, is called before every step, e.g. to feed input.
	BeforeStep func(tick int)
}

// Run steps the simulation until it is over, maxTicks is reached, or ctx
// is done. A maxTicks of 0 means no limit.
func (r *Runner) Run(ctx context.Context, maxTicks int) (RunResult, error) {
	stall := r.StallTicks
	if stall <= 0 {
		stall = DefaultStallTicks
	}

	var res RunResult
	last := r.Sim.Progress()
	idle := 0
	for maxTicks <= 0 || res.Ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if r.Sim.Phase() == PhaseGameOver {
			res.GameOver = true
			return res, nil
		}

		if r.BeforeStep != nil {
			r.BeforeStep(res.Ticks)
		}
		r.Sim.Step()
		res.Ticks++

		switch p := r.Sim.Progress(); {
		case p != last:
			last = p
			idle = 0
		case r.Sim.Phase() == PhaseIdle || r.Sim.Paused():
			idle = 0
		default:
			idle++
			if idle >= stall {
				return res, fmt.Errorf("%w: stuck in %s for %d ticks", ErrStalled, r.Sim.Phase(), idle)
			}
		}
	}
	res.GameOver = r.Sim.Phase() == PhaseGameOver
	return res, nil
}
