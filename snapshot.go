package graphz

// Snapshot is a read-only view of the engine at one point in time. It shares
// nothing with the engine: consumers may keep or modify it freely.
type Snapshot struct {
	Instruments  []Instrument  `json:"instruments"`
	Selected     string        `json:"selected"`
	Cash         Money         `json:"cash"`
	Holdings     []Holding     `json:"holdings"` // sorted by symbol
	Transactions []Transaction `json:"transactions"`
	Notification *Notification `json:"notification"`

	InitialCash            Money   `json:"initialCash"`
	PortfolioValue         Money   `json:"portfolioValue"`
	TotalValue             Money   `json:"totalValue"`
	TotalProfitLoss        Money   `json:"totalProfitLoss"`
	TotalProfitLossPercent Percent `json:"totalProfitLossPercent"`
}

func newSnapshot(s State, log TransactionLog, selected string, n *Notification) Snapshot {
	return Snapshot{
		Instruments:            s.Market.Instruments(),
		Selected:               selected,
		Cash:                   s.Portfolio.Cash,
		Holdings:               s.Portfolio.Holdings.Sorted(),
		Transactions:           log.All(),
		Notification:           n,
		InitialCash:            InitialCash,
		PortfolioValue:         PortfolioValue(s.Portfolio.Holdings, s.Market),
		TotalValue:             TotalValue(s.Portfolio, s.Market),
		TotalProfitLoss:        TotalProfitLoss(s.Portfolio, s.Market),
		TotalProfitLossPercent: TotalProfitLossPercent(s.Portfolio, s.Market),
	}
}

// Instrument returns the instrument for symbol.
func (s Snapshot) Instrument(symbol string) (Instrument, bool) {
	for _, in := range s.Instruments {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return Instrument{}, false
}

// SelectedInstrument returns the instrument the detail view is on.
func (s Snapshot) SelectedInstrument() (Instrument, bool) {
	return s.Instrument(s.Selected)
}

// Holding returns the holding for symbol.
func (s Snapshot) Holding(symbol string) (Holding, bool) {
	for _, h := range s.Holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}
