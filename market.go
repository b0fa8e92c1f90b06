package graphz

import (
	"time"
)

// Market holds the simulated instruments, in registry order.
//
// A Market is never modified after creation: Tick returns a new one. This is
// what allows the Engine to swap states atomically and to share a Market
// between snapshots.
type Market struct {
	instruments []Instrument
	index       map[string]int
}

// NewMarket seeds one instrument per registry listing.
func NewMarket(rng Rand, registry *Registry, now time.Time) *Market {
	m := &Market{
		instruments: make([]Instrument, 0, registry.Len()),
		index:       make(map[string]int, registry.Len()),
	}
	for _, l := range registry.Listings() {
		m.index[l.Symbol] = len(m.instruments)
		m.instruments = append(m.instruments, NewInstrument(rng, l, now))
	}
	return m
}

// Has returns true if symbol is traded on this market.
func (m *Market) Has(symbol string) bool {
	_, ok := m.index[symbol]
	return ok
}

// Get returns the instrument for symbol.
func (m *Market) Get(symbol string) (Instrument, bool) {
	i, ok := m.index[symbol]
	if !ok {
		return Instrument{}, false
	}
	return m.instruments[i], true
}

// Len returns the number of instruments.
func (m *Market) Len() int { return len(m.instruments) }

// Symbols returns the traded symbols in registry order.
func (m *Market) Symbols() []string {
	symbols := make([]string, len(m.instruments))
	for i, in := range m.instruments {
		symbols[i] = in.Symbol
	}
	return symbols
}

// Instruments returns a deep copy of all instruments.
func (m *Market) Instruments() []Instrument {
	out := make([]Instrument, len(m.instruments))
	for i, in := range m.instruments {
		out[i] = in.clone()
	}
	return out
}

// Tick advances every instrument by one candle and returns the new market.
func (m *Market) Tick(rng Rand, now time.Time) *Market {
	next := &Market{
		instruments: make([]Instrument, len(m.instruments)),
		index:       m.index, // symbols never change
	}
	for i, in := range m.instruments {
		next.instruments[i] = in.Tick(rng, now)
	}
	return next
}
