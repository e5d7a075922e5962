package risk

import (
	"fmt"

	"RiskDesk/internal/domain/models"
)

// ComputeExitLevels derives the full stop/target level set for a position.
//
// A manual/rolling override replaces the hard stop and its distance is
// recomputed against avg cost; without one the hard stop sits the fixed
// HardStopPct below avg cost and the reported pct is that exact constant,
// not a value recomputed from the rounded price. The profit target is always
// entry-based regardless of override. When an ATR is supplied, the ATR stop
// is anchored at the current price only for overridden positions with a known
// price (an entry-anchored ATR stop is meaningless for a long-held legacy
// basis); its pct is still expressed against avg cost.
func ComputeExitLevels(avgCost float64, atr, overrideStop, currentPrice *float64, p Params) (models.ExitLevels, error) {
	if avgCost <= 0 {
		return models.ExitLevels{}, fmt.Errorf("avg cost %.2f: %w", avgCost, models.ErrInvalidInput)
	}

	levels := models.ExitLevels{
		ProfitTargetPrice: Round2(avgCost * (1 + p.ProfitTargetPct)),
		ProfitTargetPct:   p.ProfitTargetPct,
		TrailingStopPct:   -p.TrailingStopPct,
		TimeStopDays:      p.TimeStopDays,
	}

	if overrideStop != nil && *overrideStop > 0 {
		levels.HardStopPrice = Round2(*overrideStop)
		levels.HardStopPct = Round4((levels.HardStopPrice - avgCost) / avgCost)
		levels.OverrideStopActive = true
	} else {
		levels.HardStopPrice = Round2(avgCost * (1 - p.HardStopPct))
		levels.HardStopPct = -p.HardStopPct
	}

	if atr != nil {
		atrRef := avgCost
		if levels.OverrideStopActive && currentPrice != nil {
			atrRef = *currentPrice
		}
		atrStop := Round2(atrRef - p.ATRMultiplier**atr)
		atrStopPct := Round4((atrStop - avgCost) / avgCost)
		levels.ATRStopPrice = &atrStop
		levels.ATRStopPct = &atrStopPct
	}

	return levels, nil
}

// EvaluateExitSignals checks every exit rule independently, in fixed priority
// order, and reports all that currently hold. The order of the triggered list
// is the display/prioritization contract: most urgent rule class first.
func EvaluateExitSignals(currentPrice, avgCost float64, levels models.ExitLevels, highWaterMark *float64, p Params) models.ExitSignalReport {
	var triggered []models.TriggeredRule

	hardStopHit := currentPrice <= levels.HardStopPrice
	if hardStopHit {
		triggered = append(triggered, models.TriggeredRule{
			Rule:    models.RuleHardStop,
			Urgency: models.UrgencyCritical,
			Message: fmt.Sprintf("Price %.2f <= hard stop %.2f", currentPrice, levels.HardStopPrice),
		})
	}

	if levels.ATRStopPrice != nil && currentPrice <= *levels.ATRStopPrice {
		triggered = append(triggered, models.TriggeredRule{
			Rule:    models.RuleATRStop,
			Urgency: models.UrgencyHigh,
			Message: fmt.Sprintf("Price %.2f <= ATR stop %.2f", currentPrice, *levels.ATRStopPrice),
		})
	}

	// Trailing stop arms only once the position has been profitable.
	if highWaterMark != nil && *highWaterMark > avgCost {
		trailingPrice := Round2(*highWaterMark * (1 - p.TrailingStopPct))
		if currentPrice <= trailingPrice {
			triggered = append(triggered, models.TriggeredRule{
				Rule:    models.RuleTrailingStop,
				Urgency: models.UrgencyHigh,
				Message: fmt.Sprintf("Price %.2f <= trailing stop %.2f (%.0f%% from high %.2f)",
					currentPrice, trailingPrice, p.TrailingStopPct*100, *highWaterMark),
			})
		}
	}

	if currentPrice >= levels.ProfitTargetPrice {
		triggered = append(triggered, models.TriggeredRule{
			Rule:    models.RuleProfitTarget,
			Urgency: models.UrgencyMedium,
			Message: fmt.Sprintf("Price %.2f >= profit target %.2f", currentPrice, levels.ProfitTargetPrice),
		})
	}

	// Proximity warning, suppressed only when the hard stop itself fired in
	// this same evaluation. A tighter ATR or trailing trigger does not
	// suppress it, so a WARNING can ride along with a HIGH alert.
	if !hardStopHit && levels.HardStopPrice > 0 && currentPrice > levels.HardStopPrice {
		distancePct := (currentPrice - levels.HardStopPrice) / currentPrice
		if distancePct < p.ApproachingPct {
			triggered = append(triggered, models.TriggeredRule{
				Rule:    models.RuleApproachingStop,
				Urgency: models.UrgencyWarning,
				Message: fmt.Sprintf("Only %.1f%% above hard stop %.2f", distancePct*100, levels.HardStopPrice),
			})
		}
	}

	report := models.ExitSignalReport{
		AnyTriggered:   len(triggered) > 0,
		TriggeredRules: triggered,
	}
	for _, t := range triggered {
		if t.Urgency == models.UrgencyCritical {
			report.CriticalExit = true
		}
		if t.Urgency == models.UrgencyCritical || t.Urgency == models.UrgencyHigh {
			report.HighUrgency = true
		}
	}
	return report
}
