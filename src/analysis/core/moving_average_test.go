package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------

func TestSimpleMovingAverageConstantSeries(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 42.5
	}

	avg, ok := SimpleMovingAverage(closes, 200)
	assert.True(t, ok)
	assert.Equal(t, 42.5, avg)
}

// -----------------------------------------------------------------------------

func TestSimpleMovingAverageWindowsUseMostRecent(t *testing.T) {
	// Newest-first: the 50-window must only see the leading values.
	closes := make([]float64, 200)
	for i := 0; i < 50; i++ {
		closes[i] = 100
	}
	for i := 50; i < 200; i++ {
		closes[i] = 10
	}

	avg50, ok := SimpleMovingAverage(closes, 50)
	assert.True(t, ok)
	assert.Equal(t, 100.0, avg50)

	avg200, ok := SimpleMovingAverage(closes, 200)
	assert.True(t, ok)
	// (50*100 + 150*10) / 200
	assert.Equal(t, 32.5, avg200)
}

// -----------------------------------------------------------------------------

func TestSimpleMovingAverageShortSeries(t *testing.T) {
	// Fewer values than the window still yield an average.
	avg, ok := SimpleMovingAverage([]float64{10, 20, 30}, 200)
	assert.True(t, ok)
	assert.Equal(t, 20.0, avg)
}

// -----------------------------------------------------------------------------

func TestSimpleMovingAverageEmpty(t *testing.T) {
	_, ok := SimpleMovingAverage(nil, 50)
	assert.False(t, ok)

	_, ok = SimpleMovingAverage([]float64{1}, 0)
	assert.False(t, ok)
}

// -----------------------------------------------------------------------------

func TestPercentDeviation(t *testing.T) {
	diff, ok := PercentDeviation(110, 100)
	assert.True(t, ok)
	assert.Equal(t, 10.0, diff)

	diff, ok = PercentDeviation(90, 100)
	assert.True(t, ok)
	assert.Equal(t, -10.0, diff)

	diff, ok = PercentDeviation(100.333, 100)
	assert.True(t, ok)
	assert.Equal(t, 0.33, diff)
}

// -----------------------------------------------------------------------------

func TestPercentDeviationZeroAverage(t *testing.T) {
	_, ok := PercentDeviation(50, 0)
	assert.False(t, ok)
}

// -----------------------------------------------------------------------------

func TestRange52W(t *testing.T) {
	highs := []float64{101, 140.559, 120}
	lows := []float64{95.123, 99, 98}

	low, high, ok := Range52W(highs, lows)
	assert.True(t, ok)
	assert.Equal(t, 95.12, low)
	assert.Equal(t, 140.56, high)
}

// -----------------------------------------------------------------------------

func TestRange52WEmpty(t *testing.T) {
	_, _, ok := Range52W(nil, nil)
	assert.False(t, ok)
}
