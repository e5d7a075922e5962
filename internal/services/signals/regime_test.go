package signals

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendingBars(n int, start, step float64) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	for i := range bars {
		v := start + float64(i)*step
		bars[i] = models.PriceBar{Open: v, High: v, Low: v, Close: v}
	}
	return bars
}

func TestComputeIndexStateAbove(t *testing.T) {
	// steadily rising closes finish above their own average
	st, err := ComputeIndexState("SPY", trendingBars(200, 400, 0.5), 200)
	require.NoError(t, err)

	assert.Equal(t, "SPY", st.Ticker)
	assert.True(t, st.AboveMA)
	assert.Greater(t, st.PctFromMA, 0.0)
}

func TestComputeIndexStateBelow(t *testing.T) {
	st, err := ComputeIndexState("SPY", trendingBars(200, 500, -0.5), 200)
	require.NoError(t, err)
	assert.False(t, st.AboveMA)
	assert.Less(t, st.PctFromMA, 0.0)
}

func TestComputeIndexStateExactlyOnMAIsNotAbove(t *testing.T) {
	// flat series: close equals the moving average
	st, err := ComputeIndexState("SPY", trendingBars(200, 450, 0), 200)
	require.NoError(t, err)
	assert.False(t, st.AboveMA)
	assert.Equal(t, 0.0, st.PctFromMA)
}

func TestComputeIndexStateInsufficientHistory(t *testing.T) {
	_, err := ComputeIndexState("SPY", trendingBars(199, 400, 0.5), 200)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestClassifyRegimeAllAbove(t *testing.T) {
	regime := ClassifyRegime(map[string]models.IndexState{
		"SPY": {AboveMA: true},
		"QQQ": {AboveMA: true},
	})
	assert.Equal(t, models.RegimeBull, regime.Regime)
	assert.Contains(t, regime.Note, "permitted")
}

func TestClassifyRegimeAllBelow(t *testing.T) {
	regime := ClassifyRegime(map[string]models.IndexState{
		"SPY": {AboveMA: false},
		"QQQ": {AboveMA: false},
	})
	assert.Equal(t, models.RegimeBear, regime.Regime)
	assert.Contains(t, regime.Note, "DO NOT")
}

func TestClassifyRegimeMixed(t *testing.T) {
	regime := ClassifyRegime(map[string]models.IndexState{
		"SPY": {AboveMA: true},
		"QQQ": {AboveMA: false},
	})
	assert.Equal(t, models.RegimeNeutral, regime.Regime)
}

func TestClassifyRegimeSingleIndexStillClassifies(t *testing.T) {
	regime := ClassifyRegime(map[string]models.IndexState{
		"SPY": {AboveMA: true},
	})
	assert.Equal(t, models.RegimeBull, regime.Regime)
}

func TestClassifyRegimeNoData(t *testing.T) {
	regime := ClassifyRegime(nil)
	assert.Equal(t, models.RegimeUnknown, regime.Regime)
	assert.Contains(t, regime.Note, "NEUTRAL")
	assert.NotNil(t, regime.Indices)
}
