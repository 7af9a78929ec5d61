package session

import "fmt"

// ObjectiveMode selects when a planner may stop improving.
//
// The protocol drives planners through both modes from a single mutable
// handle: first-solution mode for the initial solve, then
// continued-optimization mode for every improvement slice. An explicit
// two-state enum replaces the fragile float sentinels (+Inf vs smallest
// positive value) used as cost upper bounds elsewhere.
type ObjectiveMode int

const (
	// AcceptFirstFeasible stops the planner as soon as any feasible
	// solution is found.
	AcceptFirstFeasible ObjectiveMode = iota

	// OptimizeUntilBudget never early-accepts: the planner must spend its
	// whole time budget trying to improve the incumbent solution.
	OptimizeUntilBudget
)

// String implements fmt.Stringer.
func (m ObjectiveMode) String() string {
	switch m {
	case AcceptFirstFeasible:
		return "accept-first-feasible"
	case OptimizeUntilBudget:
		return "optimize-until-budget"
	default:
		return fmt.Sprintf("objective-mode(%d)", int(m))
	}
}

// Objective is the mutable optimization-objective handle shared between the
// verifier and the planner bound to the same session.
type Objective struct {
	mode ObjectiveMode
}

// NewObjective returns an objective in first-solution mode.
func NewObjective() *Objective {
	return &Objective{mode: AcceptFirstFeasible}
}

// Mode returns the current mode.
func (o *Objective) Mode() ObjectiveMode { return o.mode }

// SetMode switches the objective. Takes effect on the next solve.
func (o *Objective) SetMode(m ObjectiveMode) { o.mode = m }
