package risk

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveStopPolicyManualOverride(t *testing.T) {
	pos := models.Position{Ticker: "AAPL", Shares: 10, AvgCost: 100, OverrideStopPrice: fptr(140)}

	stop, source := ResolveStopPolicy(pos, 150, DefaultParams())
	assert.Equal(t, 140.0, stop)
	assert.Equal(t, models.StopSourceManual, source)
}

func TestResolveStopPolicyOverrideBeatsLegacy(t *testing.T) {
	// +400% gain would qualify as legacy, but the manual stop still wins
	pos := models.Position{Ticker: "NVDA", Shares: 10, AvgCost: 100, OverrideStopPrice: fptr(420)}

	stop, source := ResolveStopPolicy(pos, 500, DefaultParams())
	assert.Equal(t, 420.0, stop)
	assert.Equal(t, models.StopSourceManual, source)
}

func TestResolveStopPolicyLegacyRolling(t *testing.T) {
	pos := models.Position{Ticker: "NVDA", Shares: 10, AvgCost: 100}

	// +150% unrealized: rolls off the current price
	stop, source := ResolveStopPolicy(pos, 250, DefaultParams())
	assert.Equal(t, models.StopSourceRolling, source)
	assert.InDelta(t, 220.0, stop, 1e-9)
}

func TestResolveStopPolicyLegacyBoundaryIsExclusive(t *testing.T) {
	pos := models.Position{Ticker: "MSFT", Shares: 10, AvgCost: 100}

	// exactly +100% is not legacy yet
	stop, source := ResolveStopPolicy(pos, 200, DefaultParams())
	assert.Equal(t, models.StopSourceDefault, source)
	assert.Equal(t, 88.0, stop)
}

func TestResolveStopPolicyDefault(t *testing.T) {
	pos := models.Position{Ticker: "AAPL", Shares: 10, AvgCost: 100}

	stop, source := ResolveStopPolicy(pos, 105, DefaultParams())
	assert.Equal(t, models.StopSourceDefault, source)
	assert.Equal(t, 88.0, stop)
}

func TestIsLegacy(t *testing.T) {
	pos := models.Position{Ticker: "NVDA", Shares: 10, AvgCost: 100}
	p := DefaultParams()

	assert.False(t, IsLegacy(pos, 200, p))
	assert.True(t, IsLegacy(pos, 200.01, p))
	assert.False(t, IsLegacy(models.Position{AvgCost: 0}, 200, p))
}
