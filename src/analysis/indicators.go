package analysis

import (
	"sort"

	"stock-tracker/src/analysis/core"
	"stock-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Technical indicator calculator. Input close series are NEWEST-FIRST,
// matching the provider's sort=desc aggregate order.
// -----------------------------------------------------------------------------

// ComputeIndicators derives last close, 50/200-day moving averages and
// the percent deviation of last close from the 200-day average. An
// empty series yields all-nil indicators, never a crash.
func ComputeIndicators(closes []float64) models.MIndicators {
	var ind models.MIndicators

	if len(closes) == 0 {
		return ind
	}

	last := core.Round2(closes[0])
	ind.LastClose = &last

	if dma50, ok := core.SimpleMovingAverage(closes, 50); ok {
		ind.DMA50 = &dma50
	}

	dma200, ok := core.SimpleMovingAverage(closes, 200)
	if !ok {
		return ind
	}
	ind.DMA200 = &dma200

	if diff, ok := core.PercentDeviation(last, dma200); ok {
		ind.DMA200PercDiff = &diff
	}

	return ind
}

// -----------------------------------------------------------------------------

// AlignChartBars intersects a raw bar series with the three EMA series
// keyed by timestamp. Only timestamps present in the close series,
// every EMA series and the volume series survive, so no chart point is
// ever partially computed. Output is time-ascending.
func AlignChartBars(ticker string, bars []models.MRawBar, ema30, ema50, ema200 map[int64]float64) []models.MChartBar {
	var aligned []models.MChartBar

	for _, bar := range bars {
		e30, ok30 := ema30[bar.Timestamp]
		e50, ok50 := ema50[bar.Timestamp]
		e200, ok200 := ema200[bar.Timestamp]
		if !ok30 || !ok50 || !ok200 {
			continue
		}

		aligned = append(aligned, models.MChartBar{
			Ticker:    ticker,
			Timestamp: bar.Timestamp,
			Close:     bar.Close,
			EMA30:     e30,
			EMA50:     e50,
			EMA200:    e200,
			Volume:    bar.Volume,
		})
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Timestamp < aligned[j].Timestamp
	})

	return aligned
}

// -----------------------------------------------------------------------------

// ChangePercent is the percent change between the first and last close
// of a time-ascending chart series, rounded to 2 decimals.
func ChangePercent(bars []models.MChartBar) float64 {
	if len(bars) < 2 || bars[0].Close == 0 {
		return 0
	}
	return core.Round2((bars[len(bars)-1].Close - bars[0].Close) * 100 / bars[0].Close)
}
