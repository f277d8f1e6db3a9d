package core

import "math"

// -----------------------------------------------------------------------------

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -----------------------------------------------------------------------------

// SimpleMovingAverage computes the arithmetic mean of the most recent
// `window` values of a newest-first series. When fewer values are
// available the mean covers whatever is there; an empty series yields
// ok=false.
func SimpleMovingAverage(closes []float64, window int) (float64, bool) {
	if len(closes) == 0 || window <= 0 {
		return 0, false
	}

	n := window
	if len(closes) < n {
		n = len(closes)
	}

	sum := 0.0
	for _, c := range closes[:n] {
		sum += c
	}
	return Round2(sum / float64(n)), true
}

// -----------------------------------------------------------------------------

// PercentDeviation is (last - avg) / avg * 100, rounded to 2 decimals.
// A zero average yields ok=false instead of dividing by zero.
func PercentDeviation(last, avg float64) (float64, bool) {
	if avg == 0 {
		return 0, false
	}
	return Round2((last - avg) / avg * 100), true
}
