package utils

import (
	"math"
	"strconv"
)

// FormatCurrency renders a price as a US dollar amount with no fractional
// digits, e.g. 24500 -> "$24,500".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	digits := strconv.FormatInt(n, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	if neg {
		return "-$" + string(grouped)
	}
	return "$" + string(grouped)
}
