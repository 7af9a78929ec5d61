// Package verify implements the anytime-improvement protocol engine.
//
// One trial drives a planner through two operating modes from a single
// mutable objective handle: a first-solution solve under the full budget,
// then the remaining budget sliced into bounded optimization solves. The
// observed path lengths must never regress and must strictly improve at
// least once before the budget runs out.
package verify

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/planconf/internal/env"
	"github.com/roach88/planconf/internal/geom"
	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/session"
)

// Default trial bounds.
const (
	// DefaultBudget is the overall per-query time budget.
	DefaultBudget = time.Second

	// DefaultSlice is the length of one improvement solve.
	DefaultSlice = 100 * time.Millisecond

	// DefaultQueryTolerance is the state-equivalence tolerance passed to
	// the session when binding a query.
	DefaultQueryTolerance = 1e-3
)

// phase is the verifier's position in the per-query state machine.
type phase int

const (
	phaseInit phase = iota
	phaseFirstSolve
	phaseImproving
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseFirstSolve:
		return "first-solve"
	case phaseImproving:
		return "improving"
	case phaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config bounds one trial.
type Config struct {
	// Budget is the overall per-query time budget.
	Budget time.Duration

	// Slice is the length of one improvement solve.
	Slice time.Duration

	// Tolerance absorbs floating-point and measurement noise in the
	// monotonicity check. It should stay small relative to typical cost
	// deltas so genuine regressions are not masked.
	Tolerance float64

	// QueryTolerance is the state-equivalence tolerance for query binding.
	QueryTolerance float64
}

func (c Config) withDefaults() Config {
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.Slice <= 0 {
		c.Slice = DefaultSlice
	}
	if c.Tolerance < 0 {
		c.Tolerance = 0
	}
	if c.QueryTolerance <= 0 {
		c.QueryTolerance = DefaultQueryTolerance
	}
	return c
}

// DefaultTolerance derives the monotonicity tolerance from the fixture's
// cost scale: a fraction of the smallest obstacle radius.
func DefaultTolerance(e *env.Environment) float64 {
	r := e.MinRadius()
	if r <= 0 || r > 1e12 {
		return 1e-9
	}
	return r / 1e3
}

// Verifier runs the two-phase protocol for single trials.
type Verifier struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock injects the wall-clock source. Nil is ignored.
func WithClock(c Clock) Option {
	return func(v *Verifier) {
		if c != nil {
			v.clock = c
		}
	}
}

// WithLogger injects the structured logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a verifier. Zero config fields fall back to defaults.
func New(cfg Config, opts ...Option) *Verifier {
	v := &Verifier{
		cfg:    cfg.withDefaults(),
		clock:  SystemClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Config returns the effective (defaulted) trial bounds.
func (v *Verifier) Config() Config { return v.cfg }

// Run executes one trial of the protocol:
//
//  1. init: bind the query to the session and reset the planner.
//  2. first solve: objective in first-solution mode, full budget.
//  3. improving: while a whole slice still fits in the budget, clear the
//     session's solution (not the planner's search state), switch the
//     objective to continued-optimization mode, solve for one slice, and
//     check the new length against the previous one.
//  4. done: pass only if the final length strictly improved on the initial.
//
// Loop termination uses measured elapsed time, so a planner that overruns
// its bound degrades into fewer improvement rounds rather than a hang.
func (v *Verifier) Run(s *session.Session, p planner.Planner, queryIndex int, q env.Query) Outcome {
	out := Outcome{QueryIndex: queryIndex}

	ph := phaseInit
	s.SetQuery(
		geom.Point{X: q.StartX, Y: q.StartY},
		geom.Point{X: q.GoalX, Y: q.GoalY},
		v.cfg.QueryTolerance,
	)
	p.Clear()
	s.ClearSolution()
	v.logger.Debug("trial started",
		"phase", ph.String(),
		"query", queryIndex,
		"budget", v.cfg.Budget,
		"slice", v.cfg.Slice,
	)

	ph = phaseFirstSolve
	s.Objective().SetMode(session.AcceptFirstFeasible)
	startAt := v.clock.Now()
	solved, err := p.Solve(v.cfg.Budget)
	if err != nil {
		return v.fail(&out, ph, startAt, ReasonPlannerError, err.Error())
	}
	if !solved {
		return v.fail(&out, ph, startAt, ReasonNoInitialSolution,
			fmt.Sprintf("no feasible solution within %v", v.cfg.Budget))
	}
	sol := s.Solution()
	if sol == nil {
		return v.fail(&out, ph, startAt, ReasonPlannerError, "solved but no solution path published")
	}
	initial := sol.Length()
	prev := initial
	out.InitialLength = initial
	out.Lengths = append(out.Lengths, initial)
	v.logger.Debug("first solution found",
		"phase", ph.String(),
		"query", queryIndex,
		"length", initial,
	)

	ph = phaseImproving
	elapsed := v.clock.Now().Sub(startAt)
	for elapsed+v.cfg.Slice < v.cfg.Budget {
		s.ClearSolution()
		s.Objective().SetMode(session.OptimizeUntilBudget)

		solved, err := p.Solve(v.cfg.Slice)
		if err != nil {
			return v.fail(&out, ph, startAt, ReasonPlannerError, err.Error())
		}
		if !solved {
			return v.fail(&out, ph, startAt, ReasonSliceSolveFailed,
				fmt.Sprintf("slice %d returned unsolved", out.Rounds+1))
		}
		sol := s.Solution()
		if sol == nil {
			return v.fail(&out, ph, startAt, ReasonPlannerError, "solved but no solution path published")
		}

		next := sol.Length()
		out.Rounds++
		out.Lengths = append(out.Lengths, next)
		if next > prev+v.cfg.Tolerance {
			return v.fail(&out, ph, startAt, ReasonRegression,
				fmt.Sprintf("length %.6f exceeds previous %.6f (tolerance %g)", next, prev, v.cfg.Tolerance))
		}
		prev = next
		elapsed = v.clock.Now().Sub(startAt)
	}

	ph = phaseDone
	out.FinalLength = prev
	out.Elapsed = elapsed
	if prev < initial {
		out.Pass = true
		v.logger.Debug("trial passed",
			"phase", ph.String(),
			"query", queryIndex,
			"rounds", out.Rounds,
			"initial", initial,
			"final", prev,
		)
		return out
	}
	return v.fail(&out, ph, startAt, ReasonNoImprovement,
		fmt.Sprintf("final length %.6f did not improve on initial %.6f after %d rounds", prev, initial, out.Rounds))
}

func (v *Verifier) fail(out *Outcome, ph phase, startAt time.Time, reason FailureReason, detail string) Outcome {
	out.Pass = false
	out.Reason = reason
	out.Detail = detail
	out.Elapsed = v.clock.Now().Sub(startAt)
	if len(out.Lengths) > 0 {
		out.FinalLength = out.Lengths[len(out.Lengths)-1]
	}
	v.logger.Debug("trial failed",
		"phase", ph.String(),
		"query", out.QueryIndex,
		"reason", string(reason),
		"detail", detail,
	)
	return *out
}
