package signals

import (
	"testing"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/services/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

// rampBars builds n bars with highs/lows/closes stepping up by one each day.
func rampBars(n int, base float64) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	for i := range bars {
		v := base + float64(i)
		bars[i] = models.PriceBar{Open: v, High: v + 1, Low: v - 1, Close: v}
	}
	return bars
}

func TestComputeBreakoutChannelExcludesLatestBar(t *testing.T) {
	bars := rampBars(21, 100)
	// latest bar spikes far above everything; it must not lift its own channel
	bars[20].High = 500
	bars[20].Close = 499

	sig, err := ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)

	// channel high is the max high of bars 0..19: 119 + 1
	assert.Equal(t, 120.0, sig.High20D)
	assert.Equal(t, 99.0, sig.Low20D)
	assert.True(t, sig.Breakout)
	assert.False(t, sig.Breakdown)
}

func TestComputeBreakoutStrictComparison(t *testing.T) {
	bars := rampBars(21, 100)
	bars[20].Close = 120 // exactly the channel high

	sig, err := ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)
	assert.False(t, sig.Breakout)

	bars[20].Close = 120.01
	sig, err = ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)
	assert.True(t, sig.Breakout)
}

func TestComputeBreakdown(t *testing.T) {
	bars := rampBars(21, 100)
	bars[20].Close = 98.99 // below the channel low of 99

	sig, err := ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)
	assert.True(t, sig.Breakdown)
	assert.False(t, sig.Breakout)
}

func TestComputeBreakoutInsufficientHistory(t *testing.T) {
	_, err := ComputeBreakout("AAPL", rampBars(20, 100), 20)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestComputeBreakoutInvalidWindow(t *testing.T) {
	_, err := ComputeBreakout("AAPL", rampBars(21, 100), 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestBuildPositionContext(t *testing.T) {
	bars := rampBars(21, 100)
	sig, err := ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)

	pos := models.Position{Ticker: "AAPL", Shares: 50, AvgCost: 80}
	pc, err := BuildPositionContext(pos, sig, fptr(2.5), risk.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, models.StopSourceDefault, pc.StopSource)
	assert.Equal(t, 50.0, pc.Shares)
	assert.Equal(t, risk.Round2(50*sig.Close), pc.MarketValue)
	assert.Equal(t, 0.5, pc.UnrealizedPnLPct)
	assert.False(t, pc.Legacy)
	assert.Equal(t, sig.High20D, pc.TrailingReference)
	assert.Equal(t, risk.Round2(80*0.88), pc.ExitLevels.HardStopPrice)
	require.NotNil(t, pc.ExitLevels.ATRStopPrice)
	// no override: ATR stop anchored at entry
	assert.Equal(t, 75.0, *pc.ExitLevels.ATRStopPrice)
}

func TestBuildPositionContextLegacyRollsStop(t *testing.T) {
	bars := rampBars(21, 100)
	sig, err := ComputeBreakout("NVDA", bars, 20)
	require.NoError(t, err)
	// close is 120; avg cost 50 means +140% unrealized

	pos := models.Position{Ticker: "NVDA", Shares: 10, AvgCost: 50}
	pc, err := BuildPositionContext(pos, sig, fptr(2.0), risk.DefaultParams())
	require.NoError(t, err)

	assert.True(t, pc.Legacy)
	assert.Equal(t, models.StopSourceRolling, pc.StopSource)
	assert.True(t, pc.ExitLevels.OverrideStopActive)
	assert.Equal(t, risk.Round2(120*0.88), pc.ExitLevels.HardStopPrice)
	// rolled stop anchors the ATR stop at the current price
	require.NotNil(t, pc.ExitLevels.ATRStopPrice)
	assert.Equal(t, 116.0, *pc.ExitLevels.ATRStopPrice)
}

func TestBuildPositionContextInvalidPosition(t *testing.T) {
	bars := rampBars(21, 100)
	sig, err := ComputeBreakout("AAPL", bars, 20)
	require.NoError(t, err)

	_, err = BuildPositionContext(models.Position{Ticker: "AAPL", Shares: 1}, sig, nil, risk.DefaultParams())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
