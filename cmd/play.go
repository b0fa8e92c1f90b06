package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"
)

type playCmd struct {
	logFile string
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "trade interactively on the live simulated market" }
func (*playCmd) Usage() string {
	return `graphz play [-log-file <file>] [<command>...]

  Starts the market simulation and an interactive trading prompt.
  Prices tick in the background while you type. Arguments are executed as
  commands before the prompt shows, e.g. graphz play "buy AAPL 10" portfolio.

  Type 'help' at the prompt for the list of commands.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.logFile, "log-file", "", "Append the engine logs to this file instead of discarding them.")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	w, closeLog, err := openLog(c.logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeLog()

	engine, err := newEngine(cfg, cfg.Logger(w), nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating the market: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the market: %v\n", err)
		return subcommands.ExitFailure
	}
	defer engine.Stop()

	s := newSession(engine, os.Stdout, os.Stdin, renderMarkdown)
	if err := s.Run(ctx, f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
