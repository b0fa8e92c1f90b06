package graphz

// InitialCash is the cash every portfolio starts with, and the reference of
// the overall profit and loss.
var InitialCash = M(100000)

// Portfolio is the cash balance and the holdings of the single user.
type Portfolio struct {
	Cash     Money    `json:"cash"`
	Holdings Holdings `json:"holdings"`
}

// NewPortfolio returns an all-cash portfolio.
func NewPortfolio() Portfolio {
	return Portfolio{Cash: InitialCash, Holdings: make(Holdings)}
}

// The valuation functions below are recomputed on every call; nothing is
// cached next to the state they derive from.

// PortfolioValue is the market value of all holdings. A holding whose symbol
// is not on the market is worth nothing.
func PortfolioValue(hs Holdings, m *Market) Money {
	total := M(0)
	for symbol, h := range hs {
		in, ok := m.Get(symbol)
		if !ok {
			continue
		}
		total = total.Add(h.MarketValue(in.Price()))
	}
	return total
}

// TotalValue is the cash plus the market value of the holdings.
func TotalValue(p Portfolio, m *Market) Money {
	return p.Cash.Add(PortfolioValue(p.Holdings, m))
}

// Performance compares the initial cash to the total value.
func (p Portfolio) Performance(m *Market) Performance {
	return Performance{Invested: InitialCash, Value: TotalValue(p, m)}
}

// TotalProfitLoss is the total value minus the initial cash.
func TotalProfitLoss(p Portfolio, m *Market) Money {
	return p.Performance(m).Change()
}

// TotalProfitLossPercent is TotalProfitLoss relative to the initial cash.
func TotalProfitLossPercent(p Portfolio, m *Market) Percent {
	return p.Performance(m).Percent()
}
