package verify

import "time"

// FailureReason categorizes why a trial failed.
type FailureReason string

const (
	// ReasonNoInitialSolution indicates the first-solution solve returned
	// unsolved within the full budget.
	ReasonNoInitialSolution FailureReason = "no-initial-solution"

	// ReasonSliceSolveFailed indicates an improvement slice returned
	// unsolved. A planner that already produced a solution must reproduce
	// one every slice.
	ReasonSliceSolveFailed FailureReason = "slice-solve-failed"

	// ReasonRegression indicates a slice reported a longer path than the
	// previous one, beyond the numeric tolerance.
	ReasonRegression FailureReason = "non-monotonic-regression"

	// ReasonNoImprovement indicates the budget was exhausted without the
	// final length dropping strictly below the initial one.
	ReasonNoImprovement FailureReason = "no-improvement"

	// ReasonPlannerError indicates the planner returned a hard error or
	// reported solved without publishing a path.
	ReasonPlannerError FailureReason = "planner-error"
)

// Outcome records one (planner variant, query) trial.
// Failures are isolated: a failing outcome never affects other trials.
type Outcome struct {
	Planner    string        `json:"planner"`
	QueryIndex int           `json:"query_index"`
	Pass       bool          `json:"pass"`
	Reason     FailureReason `json:"reason,omitempty"`
	Detail     string        `json:"detail,omitempty"`

	// InitialLength is the cost of the first feasible path.
	InitialLength float64 `json:"initial_length,omitempty"`

	// FinalLength is the cost after the last improvement slice.
	FinalLength float64 `json:"final_length,omitempty"`

	// Lengths is the observed cost trajectory, starting with the initial
	// solution.
	Lengths []float64 `json:"lengths,omitempty"`

	// Rounds counts completed improvement slices.
	Rounds int `json:"rounds"`

	// Elapsed is the measured trial duration.
	Elapsed time.Duration `json:"elapsed"`
}
