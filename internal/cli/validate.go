package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planconf/internal/env"
	"github.com/roach88/planconf/internal/session"
)

// ValidateResult holds the outcome of a fixture validation.
type ValidateResult struct {
	Obstacles int  `json:"obstacles"`
	Queries   int  `json:"queries"`
	Valid     bool `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <obstacles-file> <queries-file>",
		Short: "Validate fixture files",
		Long: `Check that the obstacle and query sources parse and that a planning
session can be constructed from them, without running any trials.

Exit codes:
  0 - Fixture is well formed
  1 - Fixture is missing, malformed, or describes a degenerate domain`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env.Load(args[0], args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "fixture invalid", err)
			}
			if _, err := session.Build(e); err != nil {
				return WrapExitError(ExitFailure, "fixture invalid", err)
			}

			result := ValidateResult{
				Obstacles: e.ObstacleCount(),
				Queries:   e.QueryCount(),
				Valid:     true,
			}
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d obstacles, %d queries\n",
				result.Obstacles, result.Queries)
			return nil
		},
	}
	return cmd
}
