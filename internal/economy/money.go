package economy

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Money formats a dollar amount with thousands separators and at most two
// decimals, e.g. "$25,000" or "-$12.5".
func Money(v float64) string {
	v = math.Round(v*100) / 100
	if v < 0 {
		return "-$" + humanize.CommafWithDigits(-v, 2)
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}
