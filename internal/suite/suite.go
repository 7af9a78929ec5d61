// Package suite enumerates planner variants against the fixture's query
// battery, runs the verification protocol for every pair, and aggregates
// the outcomes into a report.
package suite

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/planconf/internal/env"
	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/session"
	"github.com/roach88/planconf/internal/verify"
)

// DefaultMaxQueries bounds how many fixture queries each variant is run
// against, keeping total suite time proportional to the variant count.
const DefaultMaxQueries = 5

// Config configures a suite run.
type Config struct {
	// Verify bounds each individual trial.
	Verify verify.Config

	// MaxQueries caps the number of queries per variant; the effective
	// count is min(MaxQueries, fixture query count). Default 5.
	MaxQueries int

	// Clock is the wall-clock source for trials. Default: system clock.
	Clock verify.Clock

	// Logger receives structured progress events. Default: discard.
	Logger *slog.Logger

	// RunID produces the report's run identifier. Default: random UUID.
	// Tests inject a fixed source for golden comparison.
	RunID func() string
}

func (c Config) withDefaults() Config {
	if c.MaxQueries <= 0 {
		c.MaxQueries = DefaultMaxQueries
	}
	if c.Clock == nil {
		c.Clock = verify.SystemClock()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.RunID == nil {
		c.RunID = uuid.NewString
	}
	return c
}

// Report aggregates all trial outcomes of one run.
type Report struct {
	RunID  string           `json:"run_id"`
	Trials []verify.Outcome `json:"trials"`
	Passed int              `json:"passed"`
	Failed int              `json:"failed"`
	Total  int              `json:"total"`
}

// Pass reports whether every trial passed.
func (r *Report) Pass() bool { return r.Failed == 0 }

func (r *Report) add(o verify.Outcome) {
	r.Trials = append(r.Trials, o)
	r.Total++
	if o.Pass {
		r.Passed++
	} else {
		r.Failed++
	}
}

// Run executes the cross product of planner variants and the first
// min(MaxQueries, queryCount) queries.
//
// One session and one planner instance serve all queries of a variant; the
// verifier resets both between queries. Per-trial failures are recorded and
// never abort the run — every enumerated pair is attempted exactly once.
// Session or planner construction failures are fatal and returned as errors.
func Run(e *env.Environment, factories []planner.Factory, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	report := &Report{RunID: cfg.RunID()}

	queries := min(cfg.MaxQueries, e.QueryCount())

	for _, f := range factories {
		s, err := session.Build(e)
		if err != nil {
			return nil, fmt.Errorf("planner %s: %w", f.Name(), err)
		}
		p, err := f.New(s)
		if err != nil {
			return nil, fmt.Errorf("planner %s: %w", f.Name(), err)
		}
		if err := p.Setup(); err != nil {
			return nil, fmt.Errorf("planner %s setup: %w", f.Name(), err)
		}

		v := verify.New(cfg.Verify, verify.WithClock(cfg.Clock), verify.WithLogger(cfg.Logger))
		for i := 0; i < queries; i++ {
			out := v.Run(s, p, i, e.Query(i))
			out.Planner = f.Name()
			report.add(out)
			cfg.Logger.Info("trial finished",
				"planner", out.Planner,
				"query", out.QueryIndex,
				"pass", out.Pass,
				"reason", string(out.Reason),
				"rounds", out.Rounds,
			)
		}
	}

	return report, nil
}
