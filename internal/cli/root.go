// Package cli implements the planconf command line driver.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planconf/internal/planner"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. The registry supplies the planner
// variants available to subcommands; callers register variants explicitly
// before building the command.
func NewRootCommand(reg *planner.Registry) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "planconf",
		Short: "Conformance harness for anytime optimizing motion planners",
		Long: "planconf validates the monotonic anytime-improvement contract of\n" +
			"motion planners against a planar circle-obstacle fixture: a first\n" +
			"feasible solution within the budget, then improvement slices whose\n" +
			"path lengths never regress and strictly improve at least once.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts, reg))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewPlannersCommand(opts, reg))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
