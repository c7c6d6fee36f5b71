package lib

import (
	"math"
	"strconv"
)

const (
	// Margins used by ApproxEqual.
	floatEpsilon = 0x1p-52 // machine epsilon for float64
	floatULPs    = 4
)

// ApproxEqual reports whether a and b are equal within a small absolute
// epsilon or a few units in the last place. NaN is never equal to anything.
func ApproxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.Abs(a-b) <= floatEpsilon {
		return true
	}

	// ULP distance only makes sense for values of the same sign
	ia := int64(math.Float64bits(a))
	ib := int64(math.Float64bits(b))
	if (ia < 0) != (ib < 0) {
		return false
	}
	diff := ia - ib
	if diff < 0 {
		diff = -diff
	}
	return diff <= floatULPs
}

// FormatNumber renders a float in the shortest decimal form that round-trips,
// never using an exponent: 56, 2.5, 0.30000000000000004.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
