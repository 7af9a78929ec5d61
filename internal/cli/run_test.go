package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/plannersim"
	"github.com/roach88/planconf/internal/suite"
	"github.com/roach88/planconf/internal/testutil"
)

// writeFixture writes obstacle and query files and returns their paths.
func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	obstacles := filepath.Join(dir, "obstacles.txt")
	queries := filepath.Join(dir, "queries.txt")
	require.NoError(t, os.WriteFile(obstacles, []byte(testutil.DefaultObstacles), 0o644))
	require.NoError(t, os.WriteFile(queries, []byte(testutil.DefaultQueries), 0o644))
	return obstacles, queries
}

func newRegistry(t *testing.T, factories ...planner.Factory) *planner.Registry {
	t.Helper()
	reg := planner.NewRegistry()
	for _, f := range factories {
		require.NoError(t, reg.Register(f))
	}
	return reg
}

// Short real-time budgets keep these tests fast; the simulated planners
// sleep for their simulated solve time.
var fastFlags = []string{"--budget", "80ms", "--slice", "20ms", "--max-queries", "1"}

func TestRunCommandPass(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t, plannersim.New(plannersim.Options{Name: "sim-good"}))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{obstacles, queries}, fastFlags...))

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Fixture: 5 obstacles, 6 queries (1 per planner)")
	assert.Contains(t, output, "PASS  sim-good")
	assert.Contains(t, output, "1 planners, 1 trials: 1 passed, 0 failed")
}

func TestRunCommandFailingTrial(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t,
		plannersim.New(plannersim.Options{Name: "sim-good"}),
		plannersim.New(plannersim.Options{Name: "sim-regress", Regress: true}),
	)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{obstacles, queries}, fastFlags...))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 trials failed")

	output := buf.String()
	assert.Contains(t, output, "PASS  sim-good")
	assert.Contains(t, output, "FAIL  sim-regress")
	assert.Contains(t, output, "non-monotonic-regression")
}

func TestRunCommandJSON(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t, plannersim.New(plannersim.Options{Name: "sim-good"}))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{obstacles, queries}, fastFlags...))

	err := cmd.Execute()
	require.NoError(t, err)

	var report suite.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Passed)
	require.Len(t, report.Trials, 1)
	assert.Equal(t, "sim-good", report.Trials[0].Planner)
	assert.Less(t, report.Trials[0].FinalLength, report.Trials[0].InitialLength)
}

func TestRunCommandMissingFixture(t *testing.T) {
	_, queries := writeFixture(t)
	reg := newRegistry(t, plannersim.New(plannersim.Options{Name: "sim-good"}))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.txt"), queries})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load fixture")
}

func TestRunCommandUnknownPlanner(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t, plannersim.New(plannersim.Options{Name: "sim-good"}))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{obstacles, queries, "--planner", "sim-missing"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown planner "sim-missing"`)
}

func TestRunCommandEmptyRegistry(t *testing.T) {
	obstacles, queries := writeFixture(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, planner.NewRegistry())
	cmd.SetOut(buf)
	cmd.SetArgs([]string{obstacles, queries})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no planner variants registered")
}

func TestRunCommandInvalidFlagCombination(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t, plannersim.New(plannersim.Options{Name: "sim-good"}))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{obstacles, queries, "--budget", "100ms", "--slice", "300ms"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid run configuration")
}

func TestRunCommandConfigFileWithFlagOverride(t *testing.T) {
	obstacles, queries := writeFixture(t)
	reg := newRegistry(t,
		plannersim.New(plannersim.Options{Name: "sim-good"}),
		plannersim.New(plannersim.Options{Name: "sim-regress", Regress: true}),
	)

	// The file selects the failing variant; the flag overrides it.
	configPath := writeConfig(t, `
budget: 80ms
slice: 20ms
max_queries: 1
planners:
  - sim-regress
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts, reg)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{obstacles, queries, "--config", configPath, "--planner", "sim-good"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "PASS  sim-good")
	assert.NotContains(t, buf.String(), "sim-regress")
}
