package graphz

import (
	"bytes"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single currency the simulated market is quoted in.
const Currency = "USD"

// Money represents a monetary value in Currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M creates Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the go-money currency used for formatting.
func currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, Currency).Currency()
}

// String returns the amount formatted with the currency symbol, e.g. "$1,234.56".
func (m Money) String() string {
	cur := currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.Round(int32(currency().Fraction)).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value)} }

// PercentOf returns m as a percentage of base, 0 when base is zero.
func (m Money) PercentOf(base Money) Percent {
	if base.value.IsZero() {
		return 0
	}
	return Percent(m.value.Div(base.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// Float returns the inexact float64 value, for charting and display only.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes the exact amount as a JSON number, UnmarshalJSON reads it
// back unchanged.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := decimal.NewFromString(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	m.value = v
	return nil
}
