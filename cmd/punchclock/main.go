package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/punchclock/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	state := &cli.State{
		LogOutput: os.Stderr,
		// Structured logs when stderr is captured by a supervisor.
		LogJSON: !isatty.IsTerminal(os.Stderr.Fd()),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(state).ExecuteContext(context.Background())
}
