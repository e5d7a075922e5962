package signals

import (
	"fmt"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/services/risk"

	"github.com/markcheno/go-talib"
)

// ComputeBreakout computes the rolling channel breakout signal for one ticker.
// The channel high/low cover the window bars immediately preceding the latest
// bar; the latest bar is excluded so the signal never references itself.
func ComputeBreakout(ticker string, bars []models.PriceBar, window int) (models.TrendSignal, error) {
	if window <= 0 {
		return models.TrendSignal{}, fmt.Errorf("breakout window %d: %w", window, models.ErrInvalidInput)
	}
	if len(bars) < window+1 {
		return models.TrendSignal{}, fmt.Errorf("breakout needs %d bars, have %d: %w",
			window+1, len(bars), models.ErrInsufficientHistory)
	}

	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	// Rolling extrema end one bar before the latest.
	channelHigh := talib.Max(highs, window)[len(bars)-2]
	channelLow := talib.Min(lows, window)[len(bars)-2]
	latestClose := bars[len(bars)-1].Close

	return models.TrendSignal{
		Ticker:    ticker,
		Close:     risk.Round2(latestClose),
		High20D:   risk.Round2(channelHigh),
		Low20D:    risk.Round2(channelLow),
		Breakout:  latestClose > channelHigh,
		Breakdown: latestClose < channelLow,
	}, nil
}

// BuildPositionContext enriches a trend signal with the held position's risk
// view: stop provenance, derived exit levels, and the triggered-rule report.
// The channel high doubles as the high-water mark for the trailing check;
// the recent peak is what matters, an all-time peak would be stale.
func BuildPositionContext(pos models.Position, sig models.TrendSignal, atr *float64, p risk.Params) (*models.PositionContext, error) {
	if pos.AvgCost <= 0 {
		return nil, fmt.Errorf("position %s avg cost %.2f: %w", pos.Ticker, pos.AvgCost, models.ErrInvalidInput)
	}

	currentPrice := sig.Close
	stop, source := risk.ResolveStopPolicy(pos, currentPrice, p)

	var overrideStop, atrRefPrice *float64
	if source != models.StopSourceDefault {
		overrideStop = &stop
		atrRefPrice = &currentPrice
	}

	levels, err := risk.ComputeExitLevels(pos.AvgCost, atr, overrideStop, atrRefPrice, p)
	if err != nil {
		return nil, err
	}

	hwm := sig.High20D
	report := risk.EvaluateExitSignals(currentPrice, pos.AvgCost, levels, &hwm, p)

	return &models.PositionContext{
		Shares:            pos.Shares,
		AvgCost:           risk.Round2(pos.AvgCost),
		MarketValue:       risk.Round2(pos.Shares * currentPrice),
		UnrealizedPnLPct:  risk.Round4((currentPrice - pos.AvgCost) / pos.AvgCost),
		Legacy:            risk.IsLegacy(pos, currentPrice, p),
		StopSource:        source,
		TrailingReference: sig.High20D,
		ExitLevels:        levels,
		ExitSignals:       report,
	}, nil
}
