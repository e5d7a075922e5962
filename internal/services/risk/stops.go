package risk

import "RiskDesk/internal/domain/models"

// ResolveStopPolicy picks the hard stop for a position by the shared
// precedence: manual override, then a rolling stop off the current price for
// legacy positions (unrealized gain beyond LegacyPnLPct, where the entry-based
// stop is stale), then the default stop off average cost. Exit levels, heat
// aggregation and trend position context all route through this one function
// so the three call sites cannot drift.
func ResolveStopPolicy(pos models.Position, currentPrice float64, p Params) (float64, models.StopSource) {
	if pos.OverrideStopPrice != nil && *pos.OverrideStopPrice > 0 {
		return *pos.OverrideStopPrice, models.StopSourceManual
	}
	if pos.AvgCost > 0 {
		pnlPct := (currentPrice - pos.AvgCost) / pos.AvgCost
		if pnlPct > p.LegacyPnLPct {
			return currentPrice * (1 - p.HardStopPct), models.StopSourceRolling
		}
	}
	return pos.AvgCost * (1 - p.HardStopPct), models.StopSourceDefault
}

// IsLegacy reports whether a position's unrealized gain exceeds the legacy
// threshold at the given price.
func IsLegacy(pos models.Position, currentPrice float64, p Params) bool {
	if pos.AvgCost <= 0 {
		return false
	}
	return (currentPrice-pos.AvgCost)/pos.AvgCost > p.LegacyPnLPct
}
