package risk

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatBars(n int, high, low, close float64) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	for i := range bars {
		bars[i] = models.PriceBar{High: high, Low: low, Close: close}
	}
	return bars
}

func TestATRConstantRange(t *testing.T) {
	// Every bar has true range 2 and the close stays inside the next bar's
	// range, so the smoothed value must be exactly 2.
	bars := flatBars(30, 102, 100, 101)
	atr, err := ATR(bars, 14)
	require.NoError(t, err)
	assert.Equal(t, 2.0, atr)
}

func TestATRExponentialSmoothing(t *testing.T) {
	bars := []models.PriceBar{
		{High: 3, Low: 1, Close: 2},
		{High: 4, Low: 2, Close: 3},
		{High: 6, Low: 4, Close: 5},
	}
	// alpha = 2/3: seed 2, second TR 2 keeps 2, third TR 3 gives 2/3*3 + 1/3*2.
	atr, err := ATR(bars, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.6667, atr)
}

func TestATRGapUsesPrevClose(t *testing.T) {
	bars := []models.PriceBar{
		{High: 11, Low: 9, Close: 10},
		{High: 11, Low: 9, Close: 10},
		// gap up: high-prevClose dominates high-low
		{High: 16, Low: 15, Close: 15.5},
	}
	atr, err := ATR(bars, 2)
	require.NoError(t, err)
	// TRs: seed 2, then 2, then 16-10=6 -> 2/3*6 + 1/3*2
	assert.Equal(t, 4.6667, atr)
}

func TestATRInsufficientHistory(t *testing.T) {
	bars := flatBars(14, 102, 100, 101)
	_, err := ATR(bars, 14)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestATRInvalidPeriod(t *testing.T) {
	bars := flatBars(30, 102, 100, 101)
	_, err := ATR(bars, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
