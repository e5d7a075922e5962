package risk

import "math"

// Params is the process-wide rule parameter set. It is passed explicitly into
// every computation instead of living as package constants so tests can run
// alternate parameter sets deterministically.
type Params struct {
	RiskPerTradePct   float64 // fraction of portfolio risked per new trade
	HardStopPct       float64 // hard stop distance below entry
	ProfitTargetPct   float64 // profit target distance above entry
	TrailingStopPct   float64 // trailing stop distance below high-water mark
	TimeStopDays      int     // stagnation review horizon, trading days
	ATRMultiplier     float64 // stop = reference - ATRMultiplier * ATR
	ATRPeriod         int     // ATR smoothing span
	MaxPortfolioHeat  float64 // cap on aggregate fraction of portfolio at risk
	BreakoutWindow    int     // channel lookback, trading days
	RegimeMAPeriod    int     // regime moving average, trading days
	LegacyPnLPct      float64 // unrealized gain beyond which entry stops are stale
	ApproachingPct    float64 // warn when within this fraction above the hard stop
}

// DefaultParams returns the production rule set.
func DefaultParams() Params {
	return Params{
		RiskPerTradePct:  0.01,
		HardStopPct:      0.12,
		ProfitTargetPct:  0.20,
		TrailingStopPct:  0.08,
		TimeStopDays:     20,
		ATRMultiplier:    2.0,
		ATRPeriod:        14,
		MaxPortfolioHeat: 0.10,
		BreakoutWindow:   20,
		RegimeMAPeriod:   200,
		LegacyPnLPct:     1.0,
		ApproachingPct:   0.03,
	}
}

// Round2 rounds a price to cents.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round4 rounds a percentage or volatility value to 4 decimal places.
func Round4(v float64) float64 { return math.Round(v*10000) / 10000 }
