package graphz

import (
	"slices"
	"time"
)

const (
	// HistoryLength is the number of candles kept per instrument.
	HistoryLength = 101
	// CandleSpacing is the time between two candles of the initial history.
	CandleSpacing = time.Minute
	// MovingAveragePeriod is the number of closes the chart average spans.
	MovingAveragePeriod = 20
)

// Listing is a registry entry: what can be traded and its reference price.
type Listing struct {
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Name      string  `json:"name" yaml:"name"`
	BasePrice float64 `json:"basePrice" yaml:"basePrice"`
}

// Instrument is a listing with its simulated price state.
//
// Change and ChangePercent are always relative to BasePrice, never to the
// previous candle.
type Instrument struct {
	Listing
	CurrentPrice  float64  `json:"currentPrice"`
	PreviousPrice float64  `json:"previousPrice"`
	Change        float64  `json:"change"`
	ChangePercent Percent  `json:"changePercent"`
	History       []Candle `json:"historicalData"`
}

// NewInstrument builds the initial HistoryLength candles of a listing, the
// last one ending at now. The first candle opens at the base price and every
// following candle opens one random walk step away from the previous close.
func NewInstrument(rng Rand, l Listing, now time.Time) Instrument {
	history := make([]Candle, HistoryLength)
	price := l.BasePrice
	for i := range history {
		ts := now.Add(-time.Duration(HistoryLength-1-i) * CandleSpacing)
		c := GenerateOHLC(rng, price, l.BasePrice).at(ts)
		history[i] = c
		price = GeneratePriceMovement(rng, c.Close, historyVolatility)
	}

	in := Instrument{
		Listing:       l,
		PreviousPrice: l.BasePrice,
		History:       history,
	}
	in.setPrice(history[len(history)-1].Close)
	return in
}

// setPrice updates the current price and the change against the base price.
func (in *Instrument) setPrice(p float64) {
	in.CurrentPrice = p
	in.Change = p - in.BasePrice
	in.ChangePercent = PercentChange(in.BasePrice, p)
}

// Tick returns the instrument advanced by one candle opening at the last
// close. The oldest candle is dropped so the history keeps its length. The
// receiver is left untouched.
func (in Instrument) Tick(rng Rand, now time.Time) Instrument {
	open := in.CurrentPrice
	history := make([]Candle, 0, max(len(in.History), 1))
	if n := len(in.History); n > 0 {
		open = in.History[n-1].Close
		history = append(history, in.History[1:]...)
	}
	c := GenerateOHLC(rng, open, in.BasePrice).at(now)
	history = append(history, c)

	out := in
	out.History = history
	out.PreviousPrice = in.CurrentPrice
	out.setPrice(c.Close)
	return out
}

// Price is the current price as Money, the price trades execute at.
func (in Instrument) Price() Money { return M(in.CurrentPrice) }

// Last returns the most recent n candles (all of them if n <= 0 or too large).
func (in Instrument) Last(n int) []Candle {
	if n <= 0 || n > len(in.History) {
		n = len(in.History)
	}
	return in.History[len(in.History)-n:]
}

// MovingAverage returns the simple moving average of the closes over period
// candles. The i-th value averages History[i:i+period], so the first one lines
// up with candle period-1 and no value exists for the candles before it. It is
// empty when the history is shorter than period.
func (in Instrument) MovingAverage(period int) []float64 {
	if period <= 0 || len(in.History) < period {
		return nil
	}
	out := make([]float64, 0, len(in.History)-period+1)
	var sum float64
	for i, c := range in.History {
		sum += c.Close
		if i >= period {
			sum -= in.History[i-period].Close
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}

// clone returns a deep copy, so that the history can be handed out.
func (in Instrument) clone() Instrument {
	in.History = slices.Clone(in.History)
	return in
}
