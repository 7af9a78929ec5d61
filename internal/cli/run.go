package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/planconf/internal/env"
	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/suite"
	"github.com/roach88/planconf/internal/verify"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigPath string
	Budget     time.Duration
	Slice      time.Duration
	Tolerance  float64
	MaxQueries int
	Planners   []string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions, reg *planner.Registry) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <obstacles-file> <queries-file>",
		Short: "Run the conformance suite",
		Long: `Run every selected planner variant against the fixture queries.

Each trial solves once in first-solution mode under the full budget, then
slices the remaining budget into optimization solves and checks that path
lengths never regress and strictly improve at least once.

Exit codes:
  0 - All trials passed
  1 - One or more trials failed
  2 - Command error (missing files, malformed fixture, unknown planner)

Examples:
  planconf run testdata/circle_obstacles.txt testdata/circle_queries.txt
  planconf run obstacles.txt queries.txt --planner sim-tree --budget 2s
  planconf run obstacles.txt queries.txt --config run.yaml --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, reg, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML run configuration file")
	cmd.Flags().DurationVar(&opts.Budget, "budget", 0, "per-query time budget (default 1s)")
	cmd.Flags().DurationVar(&opts.Slice, "slice", 0, "improvement slice length (default 100ms)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "monotonicity tolerance (default: derived from fixture)")
	cmd.Flags().IntVar(&opts.MaxQueries, "max-queries", 0, "queries per planner variant (default 5)")
	cmd.Flags().StringArrayVar(&opts.Planners, "planner", nil, "planner variant to run (repeatable; default all)")

	return cmd
}

func runSuite(opts *RunOptions, reg *planner.Registry, obstaclePath, queryPath string, cmd *cobra.Command) error {
	cfg, err := resolveRunConfig(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid run configuration", err)
	}

	e, err := env.Load(obstaclePath, queryPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}

	factories, err := reg.Select(cfg.Planners)
	if err != nil {
		return WrapExitError(ExitCommandError, "planner selection failed", err)
	}
	if len(factories) == 0 {
		return NewExitError(ExitCommandError, "no planner variants registered")
	}

	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = verify.DefaultTolerance(e)
	}

	report, err := suite.Run(e, factories, suite.Config{
		Verify: verify.Config{
			Budget:    time.Duration(cfg.Budget),
			Slice:     time.Duration(cfg.Slice),
			Tolerance: tolerance,
		},
		MaxQueries: cfg.MaxQueries,
		Logger:     newLogger(cmd.ErrOrStderr(), opts.Verbose),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "suite aborted", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		outputReportText(cmd.OutOrStdout(), e, factories, report)
	}

	if !report.Pass() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d trials failed", report.Failed, report.Total))
	}
	return nil
}

// resolveRunConfig merges the optional config file with command line flags.
// Explicit flags win over file values.
func resolveRunConfig(opts *RunOptions, cmd *cobra.Command) (*RunConfig, error) {
	cfg := &RunConfig{}
	if opts.ConfigPath != "" {
		loaded, err := LoadRunConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("budget") {
		cfg.Budget = Duration(opts.Budget)
	}
	if flags.Changed("slice") {
		cfg.Slice = Duration(opts.Slice)
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = opts.Tolerance
	}
	if flags.Changed("max-queries") {
		cfg.MaxQueries = opts.MaxQueries
	}
	if flags.Changed("planner") {
		cfg.Planners = opts.Planners
	}

	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the injected logger: debug to stderr when verbose,
// discarded otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func outputReportText(w io.Writer, e *env.Environment, factories []planner.Factory, report *suite.Report) {
	queries := min(suiteMaxQueries(report, factories), e.QueryCount())
	fmt.Fprintf(w, "Fixture: %d obstacles, %d queries (%d per planner)\n",
		e.ObstacleCount(), e.QueryCount(), queries)

	for _, trial := range report.Trials {
		if trial.Pass {
			fmt.Fprintf(w, "  PASS  %-16s query %d  rounds=%d initial=%.3f final=%.3f\n",
				trial.Planner, trial.QueryIndex, trial.Rounds, trial.InitialLength, trial.FinalLength)
			continue
		}
		fmt.Fprintf(w, "  FAIL  %-16s query %d  %s: %s\n",
			trial.Planner, trial.QueryIndex, trial.Reason, trial.Detail)
	}

	fmt.Fprintf(w, "%d planners, %d trials: %d passed, %d failed\n",
		len(factories), report.Total, report.Passed, report.Failed)
}

// suiteMaxQueries recovers the per-planner query count from the report shape.
func suiteMaxQueries(report *suite.Report, factories []planner.Factory) int {
	if len(factories) == 0 {
		return 0
	}
	return report.Total / len(factories)
}
