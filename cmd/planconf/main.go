package main

import (
	"fmt"
	"os"

	"github.com/roach88/planconf/internal/cli"
	"github.com/roach88/planconf/internal/planner"
	"github.com/roach88/planconf/internal/plannersim"
)

func main() {
	reg := planner.NewRegistry()
	for _, f := range []planner.Factory{plannersim.Tree(), plannersim.Roadmap()} {
		if err := reg.Register(f); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
	}

	cmd := cli.NewRootCommand(reg)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
