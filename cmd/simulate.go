package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/Mattojjo/graphz/renderer"
	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// simulationStart is the clock of a seeded simulation, so that its output is
// reproducible.
var simulationStart = time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)

type simulateCmd struct {
	ticks   int
	seed    uint64
	asJSON  bool
	path    string
	candles int
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run the market headless and print the final snapshot" }
func (*simulateCmd) Usage() string {
	return `graphz simulate [-ticks <n>] [-seed <n>] [-json | -path <jsonpath>] [<command>...]

  Runs the market simulation without waiting between ticks, and prints the
  final snapshot. Arguments are trading commands (see 'graphz topic play')
  executed before the ticks, e.g.:

    graphz simulate -ticks 30 "buy AAPL 10" "sell AAPL 5"

  With -path, only the values selected by the JSONPath expression are
  printed, e.g. -path '$.holdings[*].quantity'.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.ticks, "ticks", 10, "Number of ticks to simulate.")
	f.Uint64Var(&c.seed, "seed", 0, "Random seed, for a reproducible simulation. Random if 0.")
	f.BoolVar(&c.asJSON, "json", false, "Print the snapshot as JSON.")
	f.StringVar(&c.path, "path", "", "Print only the JSONPath selection of the snapshot, as JSON.")
	f.IntVar(&c.candles, "candles", renderer.DefaultChartCandles, "Number of candles in the chart.")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticks < 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticks must not be negative.")
		return subcommands.ExitUsageError
	}
	if c.asJSON && c.path != "" {
		fmt.Fprintln(os.Stderr, "Error: -json and -path flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var rng graphz.Rand
	now := time.Now
	if c.seed != 0 {
		rng = rand.New(rand.NewPCG(c.seed, c.seed))
		clock := &simulatedClock{t: simulationStart, step: cfg.TickInterval}
		now = clock.Now
	}
	engine, err := newEngine(cfg, cfg.Logger(os.Stderr), rng, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating the market: %v\n", err)
		return subcommands.ExitFailure
	}
	defer engine.Stop()

	snap, err := simulate(engine, c.ticks, f.Args(), os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.path != "":
		err = printPath(os.Stdout, snap, c.path)
	case c.asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	default:
		printMarkdown(renderer.Dashboard(snap, renderer.DashboardOptions{ChartCandles: c.candles, MaxTransactions: 10}))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// simulate executes the commands, then ticks the engine, and returns the final
// snapshot. Command output goes to w.
func simulate(engine *graphz.Engine, ticks int, commands []string, w io.Writer) (graphz.Snapshot, error) {
	s := newSession(engine, w, nil, nil)
	for _, line := range commands {
		if err := s.Exec(line); err != nil {
			return graphz.Snapshot{}, fmt.Errorf("%q: %w", line, err)
		}
	}
	for i := 0; i < ticks; i++ {
		engine.Tick()
	}
	return engine.Snapshot(), nil
}

// printPath prints the JSONPath selection of the snapshot JSON document.
func printPath(w io.Writer, snap graphz.Snapshot, path string) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return fmt.Errorf("evaluating %q: %w", path, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

// simulatedClock moves forward by one step each time it is read.
type simulatedClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *simulatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}
