package risk

import (
	"fmt"

	"RiskDesk/internal/domain/models"
)

// ComputePortfolioHeat sums per-position dollar-at-risk across all open
// positions: the loss taken if every position fell from its current price to
// its hard stop simultaneously. Positions without a live price are valued at
// avg cost. Pure function of its inputs; running it twice on unchanged data
// yields identical output.
func ComputePortfolioHeat(positions []models.Position, prices map[string]float64, portfolioValue float64, p Params) (*models.PortfolioHeatReport, error) {
	if portfolioValue <= 0 {
		return nil, fmt.Errorf("portfolio value %.2f: %w", portfolioValue, models.ErrInvalidInput)
	}

	breakdown := make([]models.PositionRisk, 0, len(positions))
	totalAtRisk := 0.0

	for _, pos := range positions {
		if pos.Ticker == "" || pos.Shares <= 0 || pos.AvgCost <= 0 {
			continue
		}

		currentPrice, ok := prices[pos.Ticker]
		if !ok || currentPrice <= 0 {
			currentPrice = pos.AvgCost
		}

		hardStop, source := ResolveStopPolicy(pos, currentPrice, p)

		atRiskPerShare := currentPrice - hardStop
		if atRiskPerShare < 0 {
			atRiskPerShare = 0
		}
		atRisk := pos.Shares * atRiskPerShare
		totalAtRisk += atRisk

		breakdown = append(breakdown, models.PositionRisk{
			Ticker:        pos.Ticker,
			Shares:        pos.Shares,
			CurrentPrice:  Round2(currentPrice),
			HardStopPrice: Round2(hardStop),
			StopSource:    source,
			AtRiskUSD:     Round2(atRisk),
			AtRiskPct:     Round4(atRisk / portfolioValue),
		})
	}

	heatPct := totalAtRisk / portfolioValue
	canAdd := heatPct < p.MaxPortfolioHeat

	var note string
	if canAdd {
		note = fmt.Sprintf("Heat %.1f%% < %.0f%% cap - new positions permitted",
			heatPct*100, p.MaxPortfolioHeat*100)
	} else {
		note = fmt.Sprintf("Heat %.1f%% >= %.0f%% cap - NO new positions until existing risk is reduced",
			heatPct*100, p.MaxPortfolioHeat*100)
	}

	return &models.PortfolioHeatReport{
		PortfolioValue:  portfolioValue,
		TotalAtRiskUSD:  Round2(totalAtRisk),
		HeatPct:         Round4(heatPct),
		MaxHeatPct:      p.MaxPortfolioHeat,
		CanAddPositions: canAdd,
		Note:            note,
		Breakdown:       breakdown,
	}, nil
}
