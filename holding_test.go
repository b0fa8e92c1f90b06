package graphz

import (
	"testing"
)

func TestHoldings_Buy(t *testing.T) {
	testCases := []struct {
		name     string
		holdings Holdings
		price    Money
		quantity Quantity
		want     Holding
	}{
		{
			name:     "new holding",
			holdings: Holdings{},
			price:    USD(100),
			quantity: Q(10),
			want:     Holding{Symbol: "AAPL", Quantity: Q(10), AveragePrice: USD(100)},
		},
		{
			name:     "nil holdings",
			price:    USD(100),
			quantity: Q(10),
			want:     Holding{Symbol: "AAPL", Quantity: Q(10), AveragePrice: USD(100)},
		},
		{
			name:     "weighted average",
			holdings: Holdings{"AAPL": {Symbol: "AAPL", Quantity: Q(10), AveragePrice: USD(100)}},
			price:    USD(130),
			quantity: Q(5),
			want:     Holding{Symbol: "AAPL", Quantity: Q(15), AveragePrice: USD(110)},
		},
		{
			name:     "same price",
			holdings: Holdings{"AAPL": {Symbol: "AAPL", Quantity: Q(3), AveragePrice: USD(42.5)}},
			price:    USD(42.5),
			quantity: Q(7),
			want:     Holding{Symbol: "AAPL", Quantity: Q(10), AveragePrice: USD(42.5)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.holdings.Buy("AAPL", tc.price, tc.quantity)["AAPL"]
			if !got.Quantity.Equal(tc.want.Quantity) || !got.AveragePrice.Equal(tc.want.AveragePrice) {
				t.Errorf("Buy() = %v @ %v, want %v @ %v", got.Quantity, got.AveragePrice, tc.want.Quantity, tc.want.AveragePrice)
			}
		})
	}
}

func TestHoldings_Sell(t *testing.T) {
	start := Holdings{"AAPL": {Symbol: "AAPL", Quantity: Q(15), AveragePrice: USD(110)}}

	partial := start.Sell("AAPL", Q(5))
	if got := partial["AAPL"]; !got.Quantity.Equal(Q(10)) || !got.AveragePrice.Equal(USD(110)) {
		t.Errorf("Sell(5) = %v @ %v, want 10 @ $110.00", got.Quantity, got.AveragePrice)
	}

	all := partial.Sell("AAPL", Q(10))
	if _, exists := all["AAPL"]; exists {
		t.Error("Sell() of the whole position should remove the holding")
	}

	if got := start["AAPL"].Quantity; !got.Equal(Q(15)) {
		t.Errorf("Sell() modified the receiver, quantity is now %v", got)
	}
}

func TestCanAfford(t *testing.T) {
	testCases := []struct {
		name     string
		cash     Money
		price    Money
		quantity Quantity
		want     bool
	}{
		{name: "exact cash", cash: USD(1000), price: USD(100), quantity: Q(10), want: true},
		{name: "one share short", cash: USD(1000), price: USD(100), quantity: Q(11), want: false},
		{name: "one cent short", cash: USD(999.99), price: USD(100), quantity: Q(10), want: false},
		{name: "plenty", cash: USD(100000), price: USD(175.5), quantity: Q(3), want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAfford(tc.cash, tc.price, tc.quantity); got != tc.want {
				t.Errorf("CanAfford(%v, %v, %v) = %v, want %v", tc.cash, tc.price, tc.quantity, got, tc.want)
			}
		})
	}
}

func TestHolding_ProfitLoss(t *testing.T) {
	h := Holding{Symbol: "AAPL", Quantity: Q(10), AveragePrice: USD(100)}

	if got := h.MarketValue(USD(120)); !got.Equal(USD(1200)) {
		t.Errorf("MarketValue() = %v, want $1,200.00", got)
	}
	if got := h.ProfitLoss(USD(120)); !got.Equal(USD(200)) {
		t.Errorf("ProfitLoss() = %v, want $200.00", got)
	}
	if got := h.ProfitLossPercent(USD(90)); !got.Equal(-10) {
		t.Errorf("ProfitLossPercent() = %v, want -10%%", got)
	}
}

func TestHoldings_Sorted(t *testing.T) {
	hs := Holdings{
		"TSLA": {Symbol: "TSLA"},
		"AAPL": {Symbol: "AAPL"},
		"MSFT": {Symbol: "MSFT"},
	}
	got := hs.Sorted()
	want := []string{"AAPL", "MSFT", "TSLA"}
	for i, h := range got {
		if h.Symbol != want[i] {
			t.Fatalf("Sorted()[%d] = %s, want %s", i, h.Symbol, want[i])
		}
	}
}
