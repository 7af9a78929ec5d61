// Package plannersim provides simulated anytime planners for exercising the
// verification protocol. Real sampling planners stay behind the
// planner.Factory contract; the variants here emulate their observable
// behavior — a quick first feasible path, then budget-bound improvement
// toward the straight-line lower bound — with knobs to misbehave in every
// way the verifier must detect.
package plannersim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/roach88/planconf/internal/geom"
	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/session"
)

// Options configure one simulated variant.
type Options struct {
	// Name identifies the variant. Required.
	Name string

	// InitialDetour scales the first feasible path's length above the
	// straight-line distance between start and goal. Default 1.6.
	InitialDetour float64

	// Decay is the per-slice multiplicative step toward the floor: after
	// each optimization solve the excess over the floor is multiplied by
	// Decay. Default 0.5.
	Decay float64

	// Floor scales the straight-line distance to the best reachable
	// length. Default 1.0.
	Floor float64

	// FirstSolveFraction is the share of the budget consumed before the
	// first feasible hit in first-solution mode. Default 0.1.
	FirstSolveFraction float64

	// Regress makes every optimization slice report a longer path than the
	// previous one, violating the anytime contract.
	Regress bool

	// Stall freezes the incumbent length so no improvement ever happens.
	Stall bool

	// FailAfter, when > 0, makes the n-th optimization solve of a trial
	// report unsolved. Counts reset on Clear.
	FailAfter int

	// FailTrial, when > 0, makes the planner find no first solution during
	// that trial. Trials are counted by Clear calls.
	FailTrial int

	// Jitter adds uniform noise in [-Jitter, +Jitter] to every reported
	// length without disturbing the internal incumbent. Simulates
	// floating-point and measurement noise.
	Jitter float64

	// Seed seeds the jitter source. Zero means seed 1.
	Seed int64

	// Advance, when set, receives the simulated solve time instead of the
	// planner sleeping for it. Hook for driving a fake clock in tests.
	Advance func(time.Duration)
}

func (o Options) initialDetour() float64 {
	if o.InitialDetour <= 0 {
		return 1.6
	}
	return o.InitialDetour
}

func (o Options) decay() float64 {
	if o.Decay <= 0 || o.Decay >= 1 {
		return 0.5
	}
	return o.Decay
}

func (o Options) floor() float64 {
	if o.Floor <= 0 {
		return 1.0
	}
	return o.Floor
}

func (o Options) firstSolveFraction() float64 {
	if o.FirstSolveFraction <= 0 || o.FirstSolveFraction > 1 {
		return 0.1
	}
	return o.FirstSolveFraction
}

// New returns a factory for a simulated variant.
func New(opts Options) planner.Factory {
	return factory{opts: opts}
}

// Tree returns the stock variant emulating a tree-growth optimal planner:
// long initial detour, steady improvement.
func Tree() planner.Factory {
	return New(Options{Name: "sim-tree", InitialDetour: 1.8, Decay: 0.6})
}

// Roadmap returns the stock variant emulating a roadmap optimal planner:
// better first solution, faster convergence.
func Roadmap() planner.Factory {
	return New(Options{Name: "sim-roadmap", InitialDetour: 1.4, Decay: 0.35})
}

type factory struct {
	opts Options
}

func (f factory) Name() string { return f.opts.Name }

func (f factory) New(s *session.Session) (planner.Planner, error) {
	if f.opts.Name == "" {
		return nil, fmt.Errorf("simulated planner needs a name")
	}
	seed := f.opts.Seed
	if seed == 0 {
		seed = 1
	}
	return &simPlanner{
		s:    s,
		opts: f.opts,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// simPlanner is one simulated planner instance. Its whole "search state" is
// the incumbent solution length, persisted across solves within a trial and
// reset by Clear.
type simPlanner struct {
	s    *session.Session
	opts Options
	rng  *rand.Rand

	ready     bool // Setup called
	haveState bool // incumbent exists
	incumbent float64
	optSolves int // optimization solves this trial
	trial     int // Clear calls so far
}

func (p *simPlanner) Setup() error {
	if p.s == nil {
		return fmt.Errorf("%s: no session bound", p.opts.Name)
	}
	p.ready = true
	return nil
}

func (p *simPlanner) Clear() {
	p.haveState = false
	p.incumbent = 0
	p.optSolves = 0
	p.trial++
}

func (p *simPlanner) Solve(budget time.Duration) (bool, error) {
	if !p.ready {
		return false, fmt.Errorf("%s: solve before setup", p.opts.Name)
	}

	start, goal := p.s.Start(), p.s.Goal()
	straight := p.s.Space().Distance(start, goal)

	switch mode := p.s.Objective().Mode(); mode {
	case session.AcceptFirstFeasible:
		// Early exit on the first feasible hit: only a fraction of the
		// budget is consumed.
		p.consume(time.Duration(float64(budget) * p.opts.firstSolveFraction()))
		if p.opts.FailTrial > 0 && p.trial == p.opts.FailTrial {
			return false, nil
		}
		if !p.haveState {
			p.haveState = true
			p.incumbent = straight * p.opts.initialDetour()
		}
		p.publish(start, goal, straight)
		return true, nil

	case session.OptimizeUntilBudget:
		// Never early-accept: the whole slice is consumed.
		p.consume(budget)
		if !p.haveState {
			return false, nil
		}
		p.optSolves++
		if p.opts.FailAfter > 0 && p.optSolves >= p.opts.FailAfter {
			return false, nil
		}
		switch {
		case p.opts.Regress:
			p.incumbent *= 1.05
		case p.opts.Stall:
			// incumbent unchanged
		default:
			floor := straight * p.opts.floor()
			p.incumbent = floor + (p.incumbent-floor)*p.opts.decay()
		}
		p.publish(start, goal, straight)
		return true, nil

	default:
		return false, fmt.Errorf("%s: unknown objective mode %v", p.opts.Name, mode)
	}
}

// consume models the solve's wall-clock cost: sleep for real runs, advance
// the injected clock in deterministic tests.
func (p *simPlanner) consume(d time.Duration) {
	if p.opts.Advance != nil {
		p.opts.Advance(d)
		return
	}
	time.Sleep(d)
}

// publish places the current incumbent on the session as a polyline whose
// length matches the reported value.
func (p *simPlanner) publish(start, goal geom.Point, straight float64) {
	reported := p.incumbent
	if p.opts.Jitter > 0 {
		reported += (p.rng.Float64()*2 - 1) * p.opts.Jitter
	}
	p.s.SetSolution(detourPath(start, goal, straight, reported))
}

// detourPath builds a polyline from start to goal with the target length:
// straight when the target is no longer than the separation, otherwise a
// single perpendicular detour waypoint chosen so the two legs sum exactly
// to the target.
func detourPath(start, goal geom.Point, straight, target float64) *geom.Polyline {
	if straight == 0 {
		return geom.NewPolyline(start)
	}
	if target <= straight {
		return geom.NewPolyline(start, goal)
	}
	half := straight / 2
	h := math.Sqrt(target*target/4 - half*half)
	// Unit normal of the start-goal segment.
	nx := -(goal.Y - start.Y) / straight
	ny := (goal.X - start.X) / straight
	mid := geom.Point{
		X: (start.X+goal.X)/2 + nx*h,
		Y: (start.Y+goal.Y)/2 + ny*h,
	}
	return geom.NewPolyline(start, mid, goal)
}
