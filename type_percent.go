package graphz

import (
	"fmt"
	"math"
)

// Percent is a ratio times 100, e.g. 2.5 for 2.5%.
type Percent float64

// PercentChange is the relative move from from to to. It is 0 when from is 0.
func PercentChange(from, to float64) Percent {
	if from == 0 {
		return 0
	}
	return Percent((to - from) / from * 100)
}

// Equal compares to a hundredth of a basis point.
func (p Percent) Equal(q Percent) bool {
	return math.Abs(float64(p-q)) < 0.0001
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString always prints the sign, "+0.00%" included.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", float64(p))
}
