package risk

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestExitLevelsDefaultStop(t *testing.T) {
	levels, err := ComputeExitLevels(100, nil, nil, nil, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 88.0, levels.HardStopPrice)
	// pct is the configured constant, not recomputed from the rounded price
	assert.Equal(t, -0.12, levels.HardStopPct)
	assert.Equal(t, 120.0, levels.ProfitTargetPrice)
	assert.Equal(t, 0.20, levels.ProfitTargetPct)
	assert.Equal(t, -0.08, levels.TrailingStopPct)
	assert.Equal(t, 20, levels.TimeStopDays)
	assert.False(t, levels.OverrideStopActive)
	assert.Nil(t, levels.ATRStopPrice)
}

func TestExitLevelsOverrideWins(t *testing.T) {
	levels, err := ComputeExitLevels(100, nil, fptr(150), nil, DefaultParams())
	require.NoError(t, err)

	assert.True(t, levels.OverrideStopActive)
	assert.Equal(t, 150.0, levels.HardStopPrice)
	// distance recomputed against avg cost: a raised stop can be positive
	assert.Equal(t, 0.5, levels.HardStopPct)
	// profit target stays entry-based regardless of override
	assert.Equal(t, 120.0, levels.ProfitTargetPrice)
}

func TestExitLevelsATRStopEntryAnchored(t *testing.T) {
	levels, err := ComputeExitLevels(100, fptr(3), nil, nil, DefaultParams())
	require.NoError(t, err)

	require.NotNil(t, levels.ATRStopPrice)
	assert.Equal(t, 94.0, *levels.ATRStopPrice) // 100 - 2*3
	assert.Equal(t, -0.06, *levels.ATRStopPct)
}

func TestExitLevelsATRStopPriceAnchoredUnderOverride(t *testing.T) {
	levels, err := ComputeExitLevels(100, fptr(3), fptr(180), fptr(200), DefaultParams())
	require.NoError(t, err)

	require.NotNil(t, levels.ATRStopPrice)
	assert.Equal(t, 194.0, *levels.ATRStopPrice) // 200 - 2*3
	// pct still expressed against avg cost
	assert.Equal(t, 0.94, *levels.ATRStopPct)
}

func TestExitLevelsATRAnchorIgnoresPriceWithoutOverride(t *testing.T) {
	levels, err := ComputeExitLevels(100, fptr(3), nil, fptr(200), DefaultParams())
	require.NoError(t, err)

	require.NotNil(t, levels.ATRStopPrice)
	assert.Equal(t, 94.0, *levels.ATRStopPrice)
}

func TestExitLevelsInvalidAvgCost(t *testing.T) {
	_, err := ComputeExitLevels(0, nil, nil, nil, DefaultParams())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestExitSignalsRuleOrder(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, fptr(3), nil, nil, p)
	require.NoError(t, err)

	// Price below every stop, high-water mark armed: everything fires at once
	// and the order must stay fixed.
	report := EvaluateExitSignals(80, 100, levels, fptr(110), p)

	require.Len(t, report.TriggeredRules, 3)
	assert.Equal(t, models.RuleHardStop, report.TriggeredRules[0].Rule)
	assert.Equal(t, models.RuleATRStop, report.TriggeredRules[1].Rule)
	assert.Equal(t, models.RuleTrailingStop, report.TriggeredRules[2].Rule)
	assert.True(t, report.AnyTriggered)
	assert.True(t, report.CriticalExit)
	assert.True(t, report.HighUrgency)
}

func TestExitSignalsTrailingNeedsProfitableHistory(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, nil, nil, nil, p)
	require.NoError(t, err)

	// hwm below avg cost: the position was never profitable, trailing is unarmed
	report := EvaluateExitSignals(89, 100, levels, fptr(98), p)
	for _, r := range report.TriggeredRules {
		assert.NotEqual(t, models.RuleTrailingStop, r.Rule)
	}

	// hwm above avg cost arms it: 110 * 0.92 = 101.2
	report = EvaluateExitSignals(101, 100, levels, fptr(110), p)
	require.Len(t, report.TriggeredRules, 1)
	assert.Equal(t, models.RuleTrailingStop, report.TriggeredRules[0].Rule)
	assert.Equal(t, models.UrgencyHigh, report.TriggeredRules[0].Urgency)
	assert.False(t, report.CriticalExit)
	assert.True(t, report.HighUrgency)
}

func TestExitSignalsProfitTarget(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, nil, nil, nil, p)
	require.NoError(t, err)

	report := EvaluateExitSignals(120, 100, levels, nil, p)
	require.Len(t, report.TriggeredRules, 1)
	assert.Equal(t, models.RuleProfitTarget, report.TriggeredRules[0].Rule)
	assert.Equal(t, models.UrgencyMedium, report.TriggeredRules[0].Urgency)
	assert.False(t, report.HighUrgency)
}

func TestExitSignalsApproachingWarning(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, nil, nil, nil, p)
	require.NoError(t, err)

	// hard stop 88; at 90 the distance is 2/90 < 3%
	report := EvaluateExitSignals(90, 100, levels, nil, p)
	require.Len(t, report.TriggeredRules, 1)
	assert.Equal(t, models.RuleApproachingStop, report.TriggeredRules[0].Rule)
	assert.Equal(t, models.UrgencyWarning, report.TriggeredRules[0].Urgency)
	assert.False(t, report.HighUrgency)
}

func TestExitSignalsWarningSuppressedByHardStop(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, nil, nil, nil, p)
	require.NoError(t, err)

	report := EvaluateExitSignals(88, 100, levels, nil, p)
	for _, r := range report.TriggeredRules {
		assert.NotEqual(t, models.RuleApproachingStop, r.Rule)
	}
	assert.True(t, report.CriticalExit)
}

func TestExitSignalsWarningRidesAlongWithATR(t *testing.T) {
	p := DefaultParams()
	// wide ATR puts the ATR stop above the price while the hard stop holds
	levels, err := ComputeExitLevels(100, fptr(5), nil, nil, p)
	require.NoError(t, err)

	report := EvaluateExitSignals(89, 100, levels, nil, p)
	require.Len(t, report.TriggeredRules, 2)
	assert.Equal(t, models.RuleATRStop, report.TriggeredRules[0].Rule)
	assert.Equal(t, models.RuleApproachingStop, report.TriggeredRules[1].Rule)
}

func TestExitSignalsQuietPosition(t *testing.T) {
	p := DefaultParams()
	levels, err := ComputeExitLevels(100, nil, nil, nil, p)
	require.NoError(t, err)

	report := EvaluateExitSignals(105, 100, levels, nil, p)
	assert.False(t, report.AnyTriggered)
	assert.Empty(t, report.TriggeredRules)
}
