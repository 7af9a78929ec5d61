// Package session couples an environment to its geometry abstraction and a
// problem definition: the current start/goal query, the mutable optimization
// objective handle shared with the planner, and the zero-or-one current
// solution path.
package session

import (
	"github.com/roach88/planconf/internal/env"
	"github.com/roach88/planconf/internal/geom"
)

// Path is the consumed solution-path contract. Lower length is better.
type Path interface {
	Length() float64
}

// Session is the planning problem a planner instance is bound to.
// One session is exclusively owned by one trial at a time; it must be
// rebound via SetQuery (which discards the prior solution) between queries.
type Session struct {
	space     geom.SpaceInformation
	objective *Objective

	start     geom.Point
	goal      geom.Point
	tolerance float64

	solution Path
}

// Build constructs the geometry abstraction from the environment and a
// problem definition bound to a fresh objective in first-solution mode.
// Propagates *geom.ConfigurationError when the space cannot be constructed.
func Build(e *env.Environment) (*Session, error) {
	space, err := geom.BuildSpaceInformation(e)
	if err != nil {
		return nil, err
	}
	return &Session{
		space:     space,
		objective: NewObjective(),
	}, nil
}

// Space returns the geometry/collision abstraction.
func (s *Session) Space() geom.SpaceInformation { return s.space }

// Objective returns the mutable objective handle. The same handle is read
// by the bound planner on every solve, so mode changes take effect without
// rebuilding the problem.
func (s *Session) Objective() *Objective { return s.objective }

// SetQuery rebinds the session to a new start/goal pair with the given
// state-equivalence tolerance and discards any prior solution.
func (s *Session) SetQuery(start, goal geom.Point, tolerance float64) {
	s.start = start
	s.goal = goal
	s.tolerance = tolerance
	s.solution = nil
}

// Start returns the current query start state.
func (s *Session) Start() geom.Point { return s.start }

// Goal returns the current query goal state.
func (s *Session) Goal() geom.Point { return s.goal }

// Tolerance returns the state-equivalence tolerance of the current query.
func (s *Session) Tolerance() float64 { return s.tolerance }

// SetSolution records the current solution path. A session holds at most
// one solution at a time.
func (s *Session) SetSolution(p Path) { s.solution = p }

// Solution returns the current solution path, or nil.
func (s *Session) Solution() Path { return s.solution }

// ClearSolution discards the current solution path so the next solve's
// length comparison is unambiguous. Planner-internal search state is not
// touched; that persistence is what enables anytime improvement.
func (s *Session) ClearSolution() { s.solution = nil }
