package signals

import (
	"fmt"

	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/services/risk"

	"github.com/markcheno/go-talib"
)

// ComputeIndexState compares one broad-market index against its long simple
// moving average. Strictly above counts as above; a close exactly on the
// average does not.
func ComputeIndexState(ticker string, bars []models.PriceBar, maPeriod int) (models.IndexState, error) {
	if maPeriod <= 0 {
		return models.IndexState{}, fmt.Errorf("ma period %d: %w", maPeriod, models.ErrInvalidInput)
	}
	if len(bars) < maPeriod {
		return models.IndexState{}, fmt.Errorf("%s has %d bars, regime MA needs %d: %w",
			ticker, len(bars), maPeriod, models.ErrInsufficientHistory)
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	ma := talib.Sma(closes, maPeriod)[len(closes)-1]
	latest := closes[len(closes)-1]

	return models.IndexState{
		Ticker:        ticker,
		Close:         risk.Round2(latest),
		MovingAverage: risk.Round2(ma),
		AboveMA:       latest > ma,
		PctFromMA:     risk.Round4((latest - ma) / ma),
	}, nil
}

// ClassifyRegime folds per-index states into a single regime label. The label
// is a pure function of how many of the successfully fetched indices sit above
// their moving average; UNKNOWN only when none were fetched at all.
func ClassifyRegime(indices map[string]models.IndexState) models.MarketRegime {
	if len(indices) == 0 {
		return models.MarketRegime{
			Regime:  models.RegimeUnknown,
			Note:    "Could not fetch index data - treat as NEUTRAL",
			Indices: map[string]models.IndexState{},
		}
	}

	above := 0
	for _, st := range indices {
		if st.AboveMA {
			above++
		}
	}

	var regime models.RegimeLabel
	var note string
	switch {
	case above == len(indices):
		regime = models.RegimeBull
		note = "All tracked indices are above their long moving average. Trend is bullish. New long positions are permitted."
	case above == 0:
		regime = models.RegimeBear
		note = "All tracked indices are BELOW their long moving average. DO NOT open new long positions. Bias all existing positions toward REDUCE or EXIT."
	default:
		regime = models.RegimeNeutral
		note = "Mixed signals: indices split around their moving averages. Be highly selective. Avoid new positions unless very high conviction."
	}

	return models.MarketRegime{Regime: regime, Note: note, Indices: indices}
}
