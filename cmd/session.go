package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Mattojjo/graphz"
	"github.com/Mattojjo/graphz/renderer"
)

const prompt = "graphz> "

// sessionCommands is the help of the session, in the order of the help table.
var sessionCommands = []renderer.CommandHelp{
	{Usage: "buy SYMBOL QUANTITY", Description: "buy shares at the current price"},
	{Usage: "sell SYMBOL QUANTITY", Description: "sell shares at the current price"},
	{Usage: "select SYMBOL", Description: "select the instrument shown by chart"},
	{Usage: "quotes", Description: "show the quotes board"},
	{Usage: "chart [SYMBOL] [CANDLES]", Description: "show an instrument, the selected one by default"},
	{Usage: "portfolio", Description: "show cash, holdings and profit / loss"},
	{Usage: "history [N]", Description: "show the last N transactions, all by default"},
	{Usage: "show", Description: "show everything"},
	{Usage: "tick [N]", Description: "advance the market by N ticks, 1 by default"},
	{Usage: "help", Description: "show this help"},
	{Usage: "quit", Description: "leave"},
}

var errQuit = errors.New("quit")

// session is an interactive trading session on an engine.
type session struct {
	engine *graphz.Engine
	w      io.Writer
	r      *bufio.Reader
	render func(string) string // markdown to terminal
}

func newSession(engine *graphz.Engine, w io.Writer, r io.Reader, render func(string) string) *session {
	if render == nil {
		render = func(md string) string { return md }
	}
	return &session{engine: engine, w: w, r: bufio.NewReader(r), render: render}
}

// Run starts the REPL. Prompts are executed first, as if typed by the user.
func (s *session) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(s.w, "Welcome to graphz paper trading. Type 'help' for the commands, 'quit' to exit.")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(s.w, input)
		} else {
			var err error
			input, err = s.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		err := s.Exec(input)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.w, "Error: %v\n", err)
		}
	}
}

// Exec executes one command line.
func (s *session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "buy", "sell":
		return s.trade(name, args)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("usage: select SYMBOL")
		}
		symbol := strings.ToUpper(args[0])
		if !s.engine.SelectInstrument(symbol) {
			return fmt.Errorf("unknown symbol %q", symbol)
		}
		in, _ := s.engine.Snapshot().SelectedInstrument()
		s.print(renderer.ChartMarkdown(in, renderer.DefaultChartCandles))
	case "quotes":
		s.print(renderer.QuotesMarkdown(s.engine.Snapshot()))
	case "chart":
		return s.chart(args)
	case "portfolio":
		s.print(renderer.PortfolioMarkdown(s.engine.Snapshot()))
	case "history":
		limit := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("usage: history [N], N a positive integer")
			}
			limit = n
		}
		s.print(renderer.TransactionsMarkdown(s.engine.Snapshot().Transactions, limit))
	case "show":
		s.print(renderer.Dashboard(s.engine.Snapshot(), renderer.DashboardOptions{MaxTransactions: 10}))
	case "tick":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v <= 0 {
				return fmt.Errorf("usage: tick [N], N a positive integer")
			}
			n = v
		}
		for i := 0; i < n; i++ {
			s.engine.Tick()
		}
		s.print(renderer.QuotesMarkdown(s.engine.Snapshot()))
	case "help", "?":
		s.print(renderer.SessionHelp(sessionCommands))
	case "quit", "exit", "bye":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help' for the list", name)
	}
	return nil
}

func (s *session) trade(name string, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: %s SYMBOL QUANTITY", name)
	}
	symbol := strings.ToUpper(args[0])
	quantity, err := strconv.Atoi(args[1])
	if err != nil || quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer, got %q", args[1])
	}

	if _, ok := s.engine.Snapshot().Instrument(symbol); !ok {
		return fmt.Errorf("unknown symbol %q", symbol)
	}

	if name == "buy" {
		s.engine.BuyStock(symbol, quantity)
	} else {
		s.engine.SellStock(symbol, quantity)
	}
	// success or failure, the engine tells with a notification
	s.print(renderer.Notification(s.engine.Snapshot().Notification))
	return nil
}

func (s *session) chart(args []string) error {
	snap := s.engine.Snapshot()
	symbol, candles := snap.Selected, renderer.DefaultChartCandles
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n <= 0 {
				return fmt.Errorf("usage: chart [SYMBOL] [CANDLES]")
			}
			candles = n
			continue
		}
		symbol = strings.ToUpper(arg)
	}
	in, ok := snap.Instrument(symbol)
	if !ok {
		return fmt.Errorf("unknown symbol %q", symbol)
	}
	s.print(renderer.ChartMarkdown(in, candles))
	return nil
}

func (s *session) print(md string) {
	fmt.Fprint(s.w, s.render(md))
}
