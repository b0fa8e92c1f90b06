package graphz

import (
	"cmp"
	"maps"
	"slices"
)

// Holding is the position in one instrument.
type Holding struct {
	Symbol       string   `json:"symbol"`
	Quantity     Quantity `json:"quantity"`
	AveragePrice Money    `json:"averagePrice"` // weighted average cost per share
}

// Invested is what the shares cost.
func (h Holding) Invested() Money { return h.AveragePrice.Mul(h.Quantity) }

// MarketValue is what the shares are worth at price.
func (h Holding) MarketValue(price Money) Money { return price.Mul(h.Quantity) }

// Performance compares the invested value to the market value at price.
func (h Holding) Performance(price Money) Performance {
	return Performance{Invested: h.Invested(), Value: h.MarketValue(price)}
}

// ProfitLoss is the unrealized gain (or loss) at price.
func (h Holding) ProfitLoss(price Money) Money { return h.Performance(price).Change() }

// ProfitLossPercent is ProfitLoss as a percentage of the invested value.
func (h Holding) ProfitLossPercent(price Money) Percent { return h.Performance(price).Percent() }

// Holdings maps a symbol to its holding. Entries always have a positive
// quantity.
//
// Buy and Sell never modify the receiver, they return a new map.
type Holdings map[string]Holding

// CanAfford returns true if cash covers quantity shares at price. Spending all
// the cash is allowed.
func CanAfford(cash, price Money, quantity Quantity) bool {
	return cash.GreaterThanOrEqual(price.Mul(quantity))
}

// Buy adds quantity shares bought at price. An existing holding gets its
// average price recomputed as the quantity-weighted mean of both purchases.
func (hs Holdings) Buy(symbol string, price Money, quantity Quantity) Holdings {
	next := maps.Clone(hs)
	if next == nil {
		next = make(Holdings)
	}

	h, exists := next[symbol]
	if !exists {
		next[symbol] = Holding{Symbol: symbol, Quantity: quantity, AveragePrice: price}
		return next
	}

	total := h.Quantity.Add(quantity)
	cost := h.Invested().Add(price.Mul(quantity))
	next[symbol] = Holding{Symbol: symbol, Quantity: total, AveragePrice: cost.Div(total)}
	return next
}

// Sell removes quantity shares. The average price of the remaining shares is
// unchanged; the holding is deleted once nothing is left.
func (hs Holdings) Sell(symbol string, quantity Quantity) Holdings {
	next := maps.Clone(hs)
	h, exists := next[symbol]
	if !exists {
		return next
	}

	h.Quantity = h.Quantity.Sub(quantity)
	if !h.Quantity.IsPositive() {
		delete(next, symbol)
		return next
	}
	next[symbol] = h
	return next
}

// Quantity returns the number of shares held, zero when there is no holding.
func (hs Holdings) Quantity(symbol string) Quantity {
	return hs[symbol].Quantity
}

// Sorted returns the holdings ordered by symbol.
func (hs Holdings) Sorted() []Holding {
	out := slices.AppendSeq(make([]Holding, 0, len(hs)), maps.Values(hs))
	slices.SortFunc(out, func(a, b Holding) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return out
}
