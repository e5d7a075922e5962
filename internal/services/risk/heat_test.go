package risk

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioHeatBasic(t *testing.T) {
	positions := []models.Position{
		{Ticker: "AAPL", Shares: 100, AvgCost: 100},
		{Ticker: "MSFT", Shares: 50, AvgCost: 200},
	}
	prices := map[string]float64{"AAPL": 110, "MSFT": 210}

	report, err := ComputePortfolioHeat(positions, prices, 100_000, DefaultParams())
	require.NoError(t, err)

	// AAPL: stop 88, at risk 100*(110-88)=2200; MSFT: stop 176, 50*(210-176)=1700
	assert.Equal(t, 3900.0, report.TotalAtRiskUSD)
	assert.Equal(t, 0.039, report.HeatPct)
	assert.True(t, report.CanAddPositions)
	require.Len(t, report.Breakdown, 2)
	assert.Equal(t, 2200.0, report.Breakdown[0].AtRiskUSD)
	assert.Equal(t, models.StopSourceDefault, report.Breakdown[0].StopSource)
}

func TestPortfolioHeatMissingPriceFallsBackToAvgCost(t *testing.T) {
	positions := []models.Position{{Ticker: "AAPL", Shares: 100, AvgCost: 100}}

	report, err := ComputePortfolioHeat(positions, map[string]float64{}, 100_000, DefaultParams())
	require.NoError(t, err)

	// valued at avg cost: at risk 100*(100-88)=1200
	assert.Equal(t, 1200.0, report.TotalAtRiskUSD)
	assert.Equal(t, 100.0, report.Breakdown[0].CurrentPrice)
}

func TestPortfolioHeatOverrideAbovePriceClampsToZero(t *testing.T) {
	positions := []models.Position{
		{Ticker: "NVDA", Shares: 10, AvgCost: 100, OverrideStopPrice: fptr(150)},
	}
	prices := map[string]float64{"NVDA": 140}

	report, err := ComputePortfolioHeat(positions, prices, 100_000, DefaultParams())
	require.NoError(t, err)

	// stop above current price: locked-in profit, nothing at risk
	assert.Equal(t, 0.0, report.TotalAtRiskUSD)
	assert.Equal(t, models.StopSourceManual, report.Breakdown[0].StopSource)
}

func TestPortfolioHeatCapBoundaryIsExclusive(t *testing.T) {
	// exactly 10% at risk: 10000 = shares * (price - stop)
	positions := []models.Position{
		{Ticker: "AAPL", Shares: 1000, AvgCost: 100, OverrideStopPrice: fptr(90)},
	}
	prices := map[string]float64{"AAPL": 100}

	report, err := ComputePortfolioHeat(positions, prices, 100_000, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 0.1, report.HeatPct)
	assert.False(t, report.CanAddPositions)
	assert.Contains(t, report.Note, "NO new positions")
}

func TestPortfolioHeatSkipsMalformedPositions(t *testing.T) {
	positions := []models.Position{
		{Ticker: "AAPL", Shares: 0, AvgCost: 100},
		{Ticker: "", Shares: 10, AvgCost: 100},
		{Ticker: "MSFT", Shares: 10, AvgCost: 0},
	}

	report, err := ComputePortfolioHeat(positions, nil, 100_000, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, report.Breakdown)
	assert.Equal(t, 0.0, report.TotalAtRiskUSD)
	assert.True(t, report.CanAddPositions)
}

func TestPortfolioHeatEmptyPortfolio(t *testing.T) {
	report, err := ComputePortfolioHeat(nil, nil, 100_000, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.HeatPct)
	assert.True(t, report.CanAddPositions)
}

func TestPortfolioHeatInvalidPortfolioValue(t *testing.T) {
	_, err := ComputePortfolioHeat(nil, nil, 0, DefaultParams())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
