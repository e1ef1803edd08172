package currency

import "math"

// RoundTo9 applies the storefront's charm rounding: the displayed figure
// always ends in the digit 9. Values rounding below 10 are floored up to 9;
// larger values move to the nearest "…9" price point (132 → 129, 136 → 139).
// The function is idempotent.
func RoundTo9(x float64) int64 {
	n := int64(math.Round(x))
	if n < 10 {
		if n < 9 {
			return 9
		}
		return n
	}
	d := n % 10
	switch {
	case d == 9:
		return n
	case d < 5:
		return n - d - 1
	default:
		return n + (9 - d)
	}
}
