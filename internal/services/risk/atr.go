package risk

import (
	"fmt"
	"math"

	"RiskDesk/internal/domain/models"
)

// ATR computes the Average True Range over daily bars using exponential
// smoothing with span = period (alpha = 2/(period+1), seeded with the first
// true range). The first bar has no previous close, so its true range is
// high-low. Returns the latest smoothed value rounded to 4 decimal places.
func ATR(bars []models.PriceBar, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("atr period %d: %w", period, models.ErrInvalidInput)
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("atr needs %d bars, have %d: %w", period+1, len(bars), models.ErrInsufficientHistory)
	}

	alpha := 2.0 / (float64(period) + 1.0)
	atr := bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		tr := trueRange(bars[i], bars[i-1].Close)
		atr = alpha*tr + (1-alpha)*atr
	}
	return Round4(atr), nil
}

func trueRange(bar models.PriceBar, prevClose float64) float64 {
	tr := bar.High - bar.Low
	if hc := math.Abs(bar.High - prevClose); hc > tr {
		tr = hc
	}
	if lc := math.Abs(bar.Low - prevClose); lc > tr {
		tr = lc
	}
	return tr
}
