package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/planconf/internal/geom"
	"github.com/roach88/planconf/internal/testutil"
)

// fixedPath is a stand-in solution with a prescribed cost.
type fixedPath struct{ length float64 }

func (p fixedPath) Length() float64 { return p.length }

func TestBuild(t *testing.T) {
	e := testutil.LoadEnvironment(t, testutil.DefaultObstacles, testutil.DefaultQueries)

	s, err := Build(e)
	require.NoError(t, err)
	require.NotNil(t, s.Space())
	require.NotNil(t, s.Objective())
	assert.Equal(t, AcceptFirstFeasible, s.Objective().Mode(),
		"a fresh session starts in first-solution mode")
	assert.Nil(t, s.Solution())
}

func TestBuild_DegenerateDomain(t *testing.T) {
	e := testutil.LoadEnvironment(t, "# no obstacles\n", testutil.DefaultQueries)

	_, err := Build(e)
	require.Error(t, err)
	assert.True(t, geom.IsConfigurationError(err))
}

func TestSetQuery_ClearsPriorSolution(t *testing.T) {
	e := testutil.LoadEnvironment(t, testutil.DefaultObstacles, testutil.DefaultQueries)
	s, err := Build(e)
	require.NoError(t, err)

	s.SetQuery(geom.Point{X: 1, Y: 2}, geom.Point{X: 3, Y: 4}, 1e-3)
	s.SetSolution(fixedPath{length: 42})
	require.NotNil(t, s.Solution())

	s.SetQuery(geom.Point{X: 5, Y: 6}, geom.Point{X: 7, Y: 8}, 1e-3)
	assert.Nil(t, s.Solution(), "rebinding a query discards the prior solution")
	assert.Equal(t, geom.Point{X: 5, Y: 6}, s.Start())
	assert.Equal(t, geom.Point{X: 7, Y: 8}, s.Goal())
	assert.Equal(t, 1e-3, s.Tolerance())
}

func TestSolutionSlot(t *testing.T) {
	e := testutil.LoadEnvironment(t, testutil.DefaultObstacles, testutil.DefaultQueries)
	s, err := Build(e)
	require.NoError(t, err)

	assert.Nil(t, s.Solution())
	s.SetSolution(fixedPath{length: 10})
	require.NotNil(t, s.Solution())
	assert.Equal(t, 10.0, s.Solution().Length())

	s.ClearSolution()
	assert.Nil(t, s.Solution())
}

func TestObjectiveMode(t *testing.T) {
	o := NewObjective()
	assert.Equal(t, AcceptFirstFeasible, o.Mode())

	o.SetMode(OptimizeUntilBudget)
	assert.Equal(t, OptimizeUntilBudget, o.Mode())

	assert.Equal(t, "accept-first-feasible", AcceptFirstFeasible.String())
	assert.Equal(t, "optimize-until-budget", OptimizeUntilBudget.String())
	assert.Equal(t, "objective-mode(7)", ObjectiveMode(7).String())
}

func TestObjectiveHandleIsShared(t *testing.T) {
	e := testutil.LoadEnvironment(t, testutil.DefaultObstacles, testutil.DefaultQueries)
	s, err := Build(e)
	require.NoError(t, err)

	// The handle observed before a mode switch must see the switch: the
	// planner keeps a reference to the same objective the verifier mutates.
	handle := s.Objective()
	s.Objective().SetMode(OptimizeUntilBudget)
	assert.Equal(t, OptimizeUntilBudget, handle.Mode())
}
