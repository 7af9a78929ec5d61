package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planconf/internal/planner"
)

// NewPlannersCommand creates the planners command.
func NewPlannersCommand(rootOpts *RootOptions, reg *planner.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planners",
		Short: "List registered planner variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := reg.Names()
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No planner variants registered.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}
