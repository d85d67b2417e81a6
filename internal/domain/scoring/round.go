package scoring

import (
	"math"
	"strconv"
)

// Round rounds x to places decimals, half to even on the exact binary value:
// 2.25 becomes 2.2 and 7.345000000000001 becomes 7.35.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	s := strconv.FormatFloat(x, 'f', places, 64)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return x
	}
	if v == 0 {
		// drop negative zero
		return 0
	}
	return v
}
