package graphz

import (
	"maps"
	"slices"
)

// USD is a helper for test to create money from const
func USD(v float64) Money { return M(v) }

// constRand always draws the same value.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand cycles through values.
type seqRand struct {
	values []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

// testMarket returns a market whose instruments are priced exactly at prices
// (also used as base prices), without any history.
func testMarket(prices map[string]float64) *Market {
	m := &Market{index: make(map[string]int)}
	for _, symbol := range slices.Sorted(maps.Keys(prices)) {
		in := Instrument{Listing: Listing{Symbol: symbol, Name: symbol, BasePrice: prices[symbol]}}
		in.setPrice(prices[symbol])
		m.index[symbol] = len(m.instruments)
		m.instruments = append(m.instruments, in)
	}
	return m
}
