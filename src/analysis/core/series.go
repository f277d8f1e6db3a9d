package core

// -----------------------------------------------------------------------------

// Range52W returns the lowest low and highest high of a series of
// daily highs/lows. Empty input yields ok=false.
func Range52W(highs, lows []float64) (low, high float64, ok bool) {
	if len(highs) == 0 || len(lows) == 0 {
		return 0, 0, false
	}

	high = highs[0]
	for _, h := range highs {
		if h > high {
			high = h
		}
	}

	low = lows[0]
	for _, l := range lows {
		if l < low {
			low = l
		}
	}

	return Round2(low), Round2(high), true
}
