package pnl

import (
	"fmt"
	"math"
)

// Percent is a ratio expressed in percent: 12.5 means 12.5%.
type Percent float64

// PercentOf converts a plain ratio: 0.125 is 12.5%.
func PercentOf(ratio float64) Percent { return Percent(ratio * 100) }

// Ratio converts p back to a plain ratio: 12.5% is 0.125.
func (p Percent) Ratio() float64 { return float64(p) / 100 }

// Equal compares up to a ten thousandth of a point.
func (p Percent) Equal(q Percent) bool { return math.Abs(float64(p-q)) < 1e-4 }

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString prints the sign, or "-" when p rounds to zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
