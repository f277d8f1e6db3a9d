package analysis

import (
	"testing"

	"stock-tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestComputeIndicatorsFullSeries(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100
	}
	closes[0] = 110 // newest close

	ind := ComputeIndicators(closes)

	require.NotNil(t, ind.LastClose)
	assert.Equal(t, 110.0, *ind.LastClose)

	require.NotNil(t, ind.DMA50)
	// (110 + 49*100) / 50
	assert.Equal(t, 100.2, *ind.DMA50)

	require.NotNil(t, ind.DMA200)
	assert.Equal(t, 100.05, *ind.DMA200)

	require.NotNil(t, ind.DMA200PercDiff)
	// (110 - 100.05) / 100.05 * 100 = 9.945...
	assert.Equal(t, 9.95, *ind.DMA200PercDiff)
}

// -----------------------------------------------------------------------------

func TestComputeIndicatorsEmptySeries(t *testing.T) {
	ind := ComputeIndicators(nil)

	assert.Nil(t, ind.LastClose)
	assert.Nil(t, ind.DMA50)
	assert.Nil(t, ind.DMA200)
	assert.Nil(t, ind.DMA200PercDiff)
}

// -----------------------------------------------------------------------------

func TestAlignChartBarsIntersection(t *testing.T) {
	bars := []models.MRawBar{
		{Timestamp: 100, Close: 10, Volume: 1000},
		{Timestamp: 200, Close: 11, Volume: 2000},
		{Timestamp: 300, Close: 12, Volume: 3000},
	}
	ema30 := map[int64]float64{100: 9.5, 200: 10.5, 300: 11.5}
	ema50 := map[int64]float64{100: 9.0, 300: 11.0} // 200 missing
	ema200 := map[int64]float64{100: 8.0, 200: 9.0, 300: 10.0}

	aligned := AlignChartBars("AAPL", bars, ema30, ema50, ema200)

	// The bar at 200 lacks an ema_50 value and must be dropped.
	require.Len(t, aligned, 2)
	assert.Equal(t, int64(100), aligned[0].Timestamp)
	assert.Equal(t, int64(300), aligned[1].Timestamp)
	assert.Equal(t, "AAPL", aligned[0].Ticker)
	assert.Equal(t, 11.0, aligned[1].EMA50)
	assert.Equal(t, 3000.0, aligned[1].Volume)
}

// -----------------------------------------------------------------------------

func TestAlignChartBarsSortsAscending(t *testing.T) {
	bars := []models.MRawBar{
		{Timestamp: 300, Close: 12},
		{Timestamp: 100, Close: 10},
	}
	emas := map[int64]float64{100: 1, 300: 1}

	aligned := AlignChartBars("MSFT", bars, emas, emas, emas)

	require.Len(t, aligned, 2)
	assert.True(t, aligned[0].Timestamp < aligned[1].Timestamp)
}

// -----------------------------------------------------------------------------

func TestChangePercent(t *testing.T) {
	bars := []models.MChartBar{
		{Timestamp: 1, Close: 100},
		{Timestamp: 2, Close: 105},
		{Timestamp: 3, Close: 110},
	}
	assert.Equal(t, 10.0, ChangePercent(bars))

	assert.Equal(t, 0.0, ChangePercent(nil))
	assert.Equal(t, 0.0, ChangePercent(bars[:1]))
}
