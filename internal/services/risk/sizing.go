package risk

import (
	"fmt"
	"math"

	"RiskDesk/internal/domain/models"
)

// ComputePositionSize converts a risk budget into a share count using the
// fixed-fraction model: risk riskPct of the portfolio, divided by the per-share
// loss to the stop. The result never drops below one share, even when the risk
// budget implies a fractional count.
func ComputePositionSize(portfolioValue, entryPrice, stopPrice, riskPct float64) (models.PositionSize, error) {
	if portfolioValue <= 0 {
		return models.PositionSize{}, fmt.Errorf("portfolio value %.2f: %w", portfolioValue, models.ErrInvalidInput)
	}
	if entryPrice <= 0 || stopPrice <= 0 {
		return models.PositionSize{}, fmt.Errorf("entry %.2f stop %.2f: %w", entryPrice, stopPrice, models.ErrInvalidInput)
	}
	if stopPrice >= entryPrice {
		return models.PositionSize{}, fmt.Errorf("stop %.2f must be below entry %.2f for long trades: %w",
			stopPrice, entryPrice, models.ErrInvalidInput)
	}

	riskAmount := portfolioValue * riskPct
	riskPerShare := entryPrice - stopPrice
	shares := int(math.Floor(riskAmount / riskPerShare))
	if shares < 1 {
		shares = 1
	}
	positionValue := float64(shares) * entryPrice

	return models.PositionSize{
		PortfolioValue:    Round2(portfolioValue),
		RiskPct:           riskPct,
		RiskAmountUSD:     Round2(riskAmount),
		EntryPrice:        Round2(entryPrice),
		StopPrice:         Round2(stopPrice),
		RiskPerShare:      Round2(riskPerShare),
		Shares:            shares,
		PositionValueUSD:  Round2(positionValue),
		PortfolioFraction: Round4(positionValue / portfolioValue),
	}, nil
}
