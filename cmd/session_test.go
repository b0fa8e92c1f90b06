package cmd

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/sirupsen/logrus"
)

func newTestEngine(t *testing.T) *graphz.Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	e := graphz.New(graphz.DefaultRegistry(), graphz.Options{
		Rand:                 rand.New(rand.NewPCG(1, 2)),
		Now:                  func() time.Time { return simulationStart },
		NotificationLifetime: time.Hour,
		Logger:               logger,
	})
	t.Cleanup(e.Stop)
	return e
}

func TestSession_Exec(t *testing.T) {
	testCases := []struct {
		name    string
		lines   []string
		want    []string // in the output
		wantErr string
	}{
		{name: "buy", lines: []string{"buy aapl 10"}, want: []string{"Bought 10 shares of AAPL"}},
		{name: "sell", lines: []string{"buy AAPL 10", "sell AAPL 4"}, want: []string{"Sold 4 shares of AAPL"}},
		{name: "insufficient funds", lines: []string{"buy AAPL 1000000"}, want: []string{"Insufficient funds!"}},
		{name: "insufficient shares", lines: []string{"sell TSLA 1"}, want: []string{"Insufficient shares!"}},
		{name: "unknown symbol", lines: []string{"buy XYZ 1"}, wantErr: `unknown symbol "XYZ"`},
		{name: "bad quantity", lines: []string{"buy AAPL ten"}, wantErr: "positive integer"},
		{name: "zero quantity", lines: []string{"sell AAPL 0"}, wantErr: "positive integer"},
		{name: "missing quantity", lines: []string{"buy AAPL"}, wantErr: "usage: buy SYMBOL QUANTITY"},
		{name: "select", lines: []string{"select nvda"}, want: []string{"NVDA · NVIDIA Corp."}},
		{name: "select unknown", lines: []string{"select XYZ"}, wantErr: "unknown symbol"},
		{name: "quotes", lines: []string{"quotes"}, want: []string{"## Quotes", "NFLX"}},
		{name: "chart selected", lines: []string{"chart"}, want: []string{"AAPL · Apple Inc."}},
		{name: "chart symbol", lines: []string{"chart INTC 3"}, want: []string{"INTC · Intel Corp."}},
		{name: "portfolio", lines: []string{"buy MSFT 2", "portfolio"}, want: []string{"## Portfolio", "MSFT"}},
		{name: "history", lines: []string{"buy MSFT 2", "history 1"}, want: []string{"## Transactions", "BUY"}},
		{name: "empty history", lines: []string{"history"}, want: []string{"No transactions yet."}},
		{name: "show", lines: []string{"show"}, want: []string{"## Quotes", "## Portfolio", "## Transactions"}},
		{name: "tick", lines: []string{"tick 3"}, want: []string{"## Quotes"}},
		{name: "help", lines: []string{"help"}, want: []string{"## Commands", "buy SYMBOL QUANTITY", "advance the market by N ticks"}},
		{name: "unknown command", lines: []string{"dance"}, wantErr: `unknown command "dance"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newSession(newTestEngine(t), &out, nil, nil)

			var err error
			for _, line := range tc.lines {
				if err = s.Exec(line); err != nil {
					break
				}
			}
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("Exec() error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Exec() error = %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestSession_Run(t *testing.T) {
	e := newTestEngine(t)
	var out bytes.Buffer
	input := strings.NewReader("sell AAPL 2\nhistory\nquit\nbuy AAPL 1000\n")

	s := newSession(e, &out, input, nil)
	if err := s.Run(context.Background(), "buy AAPL 5", "", "dance"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"graphz> buy AAPL 5",
		"Bought 5 shares of AAPL",
		`Error: unknown command "dance"`,
		"Sold 2 shares of AAPL",
		"## Transactions",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
	// nothing runs after quit
	if q := e.HoldingQuantity("AAPL"); !q.Equal(graphz.Q(3)) {
		t.Errorf("HoldingQuantity() = %v, want 3", q)
	}
}

func TestSession_RunStopsOnEOF(t *testing.T) {
	s := newSession(newTestEngine(t), io.Discard, strings.NewReader("quotes\n"), nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
