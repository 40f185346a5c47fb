package report

import (
	"fmt"
	"math"
	"strconv"
)

// FormatPercent renders a share as a percentage: FormatPercent(0.1127, 1)
// is "11.3%".
func FormatPercent(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}

// FormatMinSec renders a duration in seconds as whole minutes and seconds,
// dropping the fraction: 553.19 is "9 min 13 sec".
func FormatMinSec(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "n/a"
	}
	total := int64(seconds)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d min %d sec", sign, total/60, total%60)
}
