package graphz

// Performance compares what was paid for a position, or the cash a portfolio
// started with, to what it is worth now.
type Performance struct {
	Invested Money
	Value    Money
}

// Change is the profit (positive) or loss (negative).
func (p Performance) Change() Money { return p.Value.Sub(p.Invested) }

// Percent is the change relative to the invested amount, 0 when nothing was
// invested.
func (p Performance) Percent() Percent { return p.Change().PercentOf(p.Invested) }
