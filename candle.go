package graphz

import (
	"math"
	"time"
)

const (
	// PriceFloor is the lowest price the simulator can ever produce.
	PriceFloor = 0.01
	// DefaultVolatility is the random walk volatility of GeneratePriceMovement.
	DefaultVolatility = 0.02

	// candle range as a fraction of the base price.
	candleVolatility = 0.003
	// volatility of the walk that seeds the initial history.
	historyVolatility = 0.015
	minVolume         = 500_000
	volumeSpread      = 1_000_000
	timeLabelLayout   = "03:04 PM"
)

// Rand is the source of uniform draws in [0,1) used by the simulator.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Candle is one OHLC sample with its traded volume.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	Time      string    `json:"time"` // short wall clock label, e.g. "09:41 AM"
}

// at returns a copy of c stamped with t.
func (c Candle) at(t time.Time) Candle {
	c.Timestamp = t
	c.Time = t.Format(timeLabelLayout)
	return c
}

// GenerateOHLC draws one candle opening at open. The candle range scales with
// basePrice, not with open, so instruments keep their own typical volatility.
// The returned candle has no timestamp.
//
// low <= open, close <= high holds by construction; low and close are floored
// at PriceFloor.
func GenerateOHLC(rng Rand, open, basePrice float64) Candle {
	volatility := basePrice * candleVolatility
	high := open + rng.Float64()*volatility
	low := open - rng.Float64()*volatility
	closePrice := low + rng.Float64()*(high-low)
	volume := int64(rng.Float64()*volumeSpread) + minVolume

	return Candle{
		Open:   open,
		High:   high,
		Low:    math.Max(low, PriceFloor),
		Close:  math.Max(closePrice, PriceFloor),
		Volume: volume,
	}
}

// GeneratePriceMovement is one step of a random walk with a slight upward
// drift. The result is never below PriceFloor.
func GeneratePriceMovement(rng Rand, price, volatility float64) float64 {
	drift := (rng.Float64() - 0.48) * 0.001
	shock := (rng.Float64() - 0.5) * volatility
	return math.Max(price*(1+drift+shock), PriceFloor)
}
