package renderer

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Mattojjo/graphz"
	"github.com/Mattojjo/graphz/config"
)

var testTime = time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)

func testInstrument(symbol, name string, base float64, closes ...float64) graphz.Instrument {
	in := graphz.Instrument{Listing: graphz.Listing{Symbol: symbol, Name: name, BasePrice: base}}
	for i, c := range closes {
		ts := testTime.Add(time.Duration(i-len(closes)+1) * time.Minute)
		in.History = append(in.History, graphz.Candle{
			Timestamp: ts,
			Time:      ts.Format("03:04 PM"),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1_234_567,
		})
	}
	in.CurrentPrice = closes[len(closes)-1]
	in.PreviousPrice = base
	in.Change = in.CurrentPrice - base
	in.ChangePercent = graphz.Percent(in.Change / base * 100)
	return in
}

func testSnapshot() graphz.Snapshot {
	return graphz.Snapshot{
		Instruments: []graphz.Instrument{
			testInstrument("AAPL", "Apple Inc.", 100, 100, 105, 110),
			testInstrument("INTC", "Intel Corp.", 40, 40, 39, 38),
		},
		Selected: "AAPL",
		Cash:     graphz.M(98900),
		Holdings: []graphz.Holding{
			{Symbol: "AAPL", Quantity: graphz.Q(10), AveragePrice: graphz.M(100)},
		},
		Transactions: []graphz.Transaction{
			{Type: graphz.TxBuy, Symbol: "AAPL", Quantity: graphz.Q(10), Price: graphz.M(100), Total: graphz.M(1000), Timestamp: testTime},
		},
		Notification:           &graphz.Notification{Message: "Bought 10 shares of AAPL", Kind: graphz.NotifySuccess},
		InitialCash:            graphz.InitialCash,
		PortfolioValue:         graphz.M(1100),
		TotalValue:             graphz.M(100000),
		TotalProfitLoss:        graphz.M(0),
		TotalProfitLossPercent: 0,
	}
}

func TestNotification(t *testing.T) {
	testCases := []struct {
		name string
		n    *graphz.Notification
		want string
	}{
		{name: "none", n: nil, want: ""},
		{name: "success", n: &graphz.Notification{Message: "Sold 5 shares of TSLA", Kind: graphz.NotifySuccess}, want: "> **Done:** Sold 5 shares of TSLA\n\n"},
		{name: "error", n: &graphz.Notification{Message: "Insufficient funds!", Kind: graphz.NotifyError}, want: "> **Error:** Insufficient funds!\n\n"},
		{name: "info", n: &graphz.Notification{Message: "Market open", Kind: graphz.NotifyInfo}, want: "> **Info:** Market open\n\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Notification(tc.n); got != tc.want {
				t.Errorf("Notification() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTransaction(t *testing.T) {
	testCases := []struct {
		tx   graphz.Transaction
		want string
	}{
		{
			tx:   graphz.Transaction{Type: graphz.TxBuy, Symbol: "AAPL", Quantity: graphz.Q(10), Price: graphz.M(175.5), Total: graphz.M(1755)},
			want: "Bought 10 AAPL at $175.50 for $1,755.00",
		},
		{
			tx:   graphz.Transaction{Type: graphz.TxSell, Symbol: "INTC", Quantity: graphz.Q(3), Price: graphz.M(43.85), Total: graphz.M(131.55)},
			want: "Sold 3 INTC at $43.85 for $131.55",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := Transaction(tc.tx); got != tc.want {
				t.Errorf("Transaction() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSparkline(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   string
	}{
		{name: "empty", values: nil, want: ""},
		{name: "rising", values: []float64{0, 1, 2, 3, 4, 5, 6, 7}, want: "▁▂▃▄▅▆▇█"},
		{name: "flat", values: []float64{3, 3, 3}, want: "▅▅▅"},
		{name: "valley", values: []float64{10, 0, 10}, want: "█▁█"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sparkline(tc.values); got != tc.want {
				t.Errorf("Sparkline() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestQuotesMarkdown(t *testing.T) {
	got := QuotesMarkdown(testSnapshot())
	for _, want := range []string{"## Quotes", "**AAPL**", "Apple Inc.", "$110.00", "+$10.00", "+10.00%", "INTC", "-5.00%"} {
		if !strings.Contains(got, want) {
			t.Errorf("QuotesMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "**INTC**") {
		t.Error("QuotesMarkdown() highlights an instrument that is not selected")
	}
}

func TestChartMarkdown(t *testing.T) {
	in := testInstrument("AAPL", "Apple Inc.", 100, 100, 105, 110)
	got := ChartMarkdown(in, 2)
	for _, want := range []string{"AAPL · Apple Inc.", "**$110.00**", "since $100.00", "▁▄█", "Range $99.00 to $111.00", "03:30 PM", "1.23M"} {
		if !strings.Contains(got, want) {
			t.Errorf("ChartMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "03:28 PM") {
		t.Errorf("ChartMarkdown() shows more than 2 candles:\n%s", got)
	}
}

func TestChartMarkdown_MovingAverage(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = float64(100 + i) // 100 ... 124
	}
	in := testInstrument("AAPL", "Apple Inc.", 100, closes...)

	testCases := []struct {
		name    string
		candles int
		want    []string
		missing int // candles without an average
	}{
		// candle 19 closes at 119, the first average spans 100 ... 119
		{name: "starts at the period", candles: 6, want: []string{"MA20", "$109.50", "$114.50"}},
		{name: "no average before the period", candles: 7, want: []string{"MA20", "$109.50"}, missing: 1},
		{name: "whole history", candles: 0, want: []string{"$114.50"}, missing: 19},
	}
	noAverage := regexp.MustCompile(`\|\s*-\s*\|`)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ChartMarkdown(in, tc.candles)
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("ChartMarkdown() does not contain %q:\n%s", want, got)
				}
			}
			if n := len(noAverage.FindAllString(got, -1)); n != tc.missing {
				t.Errorf("ChartMarkdown() has %d candles without an average, want %d:\n%s", n, tc.missing, got)
			}
		})
	}
}

func TestPortfolioMarkdown(t *testing.T) {
	got := PortfolioMarkdown(testSnapshot())
	for _, want := range []string{"## Portfolio", "$100,000.00", "$98,900.00", "$1,100.00", "### Holdings", "$1,000.00", "+$100.00", "+10.00%"} {
		if !strings.Contains(got, want) {
			t.Errorf("PortfolioMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	empty := testSnapshot()
	empty.Holdings = nil
	if got := PortfolioMarkdown(empty); !strings.Contains(got, "No holdings yet.") {
		t.Errorf("PortfolioMarkdown() without holdings:\n%s", got)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := []graphz.Transaction{
		{Type: graphz.TxSell, Symbol: "MSFT", Quantity: graphz.Q(1), Price: graphz.M(380), Total: graphz.M(380), Timestamp: testTime.Add(time.Minute)},
		{Type: graphz.TxBuy, Symbol: "AAPL", Quantity: graphz.Q(10), Price: graphz.M(100), Total: graphz.M(1000), Timestamp: testTime},
	}

	got := TransactionsMarkdown(txs, 1)
	if !strings.Contains(got, "MSFT") || !strings.Contains(got, "15:31:00") {
		t.Errorf("TransactionsMarkdown() misses the latest transaction:\n%s", got)
	}
	if strings.Contains(got, "AAPL") {
		t.Errorf("TransactionsMarkdown() ignores the limit:\n%s", got)
	}

	if got := TransactionsMarkdown(nil, 0); !strings.Contains(got, "No transactions yet.") {
		t.Errorf("TransactionsMarkdown(nil):\n%s", got)
	}
}

func TestDashboard(t *testing.T) {
	s := testSnapshot()

	got := Dashboard(s, DashboardOptions{})
	if strings.HasPrefix(got, "error") {
		t.Fatalf("Dashboard() = %s", got)
	}
	if !strings.HasPrefix(got, "> **Done:** Bought 10 shares of AAPL") {
		t.Errorf("Dashboard() does not start with the notification:\n%s", got)
	}
	for _, want := range []string{"## Quotes", "AAPL · Apple Inc.", "## Portfolio", "## Transactions"} {
		if !strings.Contains(got, want) {
			t.Errorf("Dashboard() does not contain %q:\n%s", want, got)
		}
	}

	got = Dashboard(s, DashboardOptions{SkipChart: true, SkipTransactions: true})
	for _, unwanted := range []string{"AAPL · Apple Inc.", "## Transactions"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Dashboard() with skipped sections contains %q:\n%s", unwanted, got)
		}
	}

	s.Notification = nil
	s.Selected = "NOPE"
	got = Dashboard(s, DashboardOptions{})
	if strings.Contains(got, "**Done:**") || strings.Contains(got, " · ") {
		t.Errorf("Dashboard() without notification nor selection:\n%s", got)
	}
}

// hasRow reports whether a markdown table has a row starting with cells,
// whatever the padding.
func hasRow(table string, cells ...string) bool {
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Split(strings.Trim(strings.TrimSpace(line), "|"), "|")
		if len(fields) < len(cells) {
			continue
		}
		match := true
		for i, cell := range cells {
			if strings.TrimSpace(fields[i]) != cell {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestConfigMarkdown(t *testing.T) {
	cfg := &config.Config{
		TickInterval:         2 * time.Second,
		NotificationLifetime: 3 * time.Second,
		HTTPAddr:             ":8080",
		LogLevel:             "info",
		LogFormat:            "json",
	}
	got := ConfigMarkdown(cfg)
	for _, row := range [][]string{
		{"Tick interval", "2s"},
		{"Notification lifetime", "3s"},
		{"Registry", "built-in"},
		{"HTTP address", ":8080"},
		{"Log level", "info"},
		{"Log format", "json"},
	} {
		if !hasRow(got, row...) {
			t.Errorf("ConfigMarkdown() has no row %q:\n%s", row, got)
		}
	}

	cfg.RegistryFile = "prices.yaml"
	if got := ConfigMarkdown(cfg); !hasRow(got, "Registry", "prices.yaml") {
		t.Errorf("ConfigMarkdown() does not show the registry file:\n%s", got)
	}
}

func TestSessionHelp(t *testing.T) {
	got := SessionHelp([]CommandHelp{
		{Usage: "buy SYMBOL QUANTITY", Description: "buy shares"},
		{Usage: "quit", Description: "leave"},
	})
	if !strings.HasPrefix(got, "## Commands") {
		t.Errorf("SessionHelp() does not start with its title:\n%s", got)
	}
	for _, row := range [][]string{{"Command", "Description"}, {"buy SYMBOL QUANTITY", "buy shares"}, {"quit", "leave"}} {
		if !hasRow(got, row...) {
			t.Errorf("SessionHelp() has no row %q:\n%s", row, got)
		}
	}
}
