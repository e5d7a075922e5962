package models

// Position is one open holding. Owned by external position tracking and
// read-only to the engine; OverrideStopPrice, when set, wins over every
// computed stop.
type Position struct {
	Ticker            string   `json:"ticker"`
	Shares            float64  `json:"shares"`
	AvgCost           float64  `json:"avg_cost"`
	OverrideStopPrice *float64 `json:"override_stop_price,omitempty"`
}

// PortfolioSnapshot mirrors the externally maintained open-positions file.
type PortfolioSnapshot struct {
	AsOf           string     `json:"as_of,omitempty"`
	PortfolioValue float64    `json:"portfolio_value_usd"`
	Positions      []Position `json:"positions"`
}

// StopSource records which of the three mutually exclusive stop policies
// produced a position's hard stop.
type StopSource string

const (
	StopSourceManual  StopSource = "manual"
	StopSourceRolling StopSource = "auto_rolling"
	StopSourceDefault StopSource = "default"
)

// ExitLevels is the full derived stop/target set for one position.
// Recomputed fresh each run, never persisted as authoritative state.
type ExitLevels struct {
	HardStopPrice      float64  `json:"hard_stop_price"`
	HardStopPct        float64  `json:"hard_stop_pct"`
	ProfitTargetPrice  float64  `json:"profit_target_price"`
	ProfitTargetPct    float64  `json:"profit_target_pct"`
	TrailingStopPct    float64  `json:"trailing_stop_pct"`
	TimeStopDays       int      `json:"time_stop_days"`
	ATRStopPrice       *float64 `json:"atr_stop_price,omitempty"`
	ATRStopPct         *float64 `json:"atr_stop_pct,omitempty"`
	OverrideStopActive bool     `json:"override_stop_active,omitempty"`
}

// ExitRule identifies one rule of the exit hierarchy.
type ExitRule string

const (
	RuleHardStop        ExitRule = "HARD_STOP"
	RuleATRStop         ExitRule = "ATR_STOP"
	RuleTrailingStop    ExitRule = "TRAILING_STOP"
	RuleProfitTarget    ExitRule = "PROFIT_TARGET"
	RuleApproachingStop ExitRule = "APPROACHING_HARD_STOP"
)

// Urgency grades a triggered exit rule.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyWarning  Urgency = "WARNING"
)

// TriggeredRule is one fired exit condition.
type TriggeredRule struct {
	Rule    ExitRule `json:"rule"`
	Urgency Urgency  `json:"urgency"`
	Message string   `json:"message"`
}

// ExitSignalReport aggregates one evaluation moment for one position.
// TriggeredRules preserves evaluation order, most urgent rule class first;
// downstream display relies on that ordering.
type ExitSignalReport struct {
	AnyTriggered   bool            `json:"any_triggered"`
	CriticalExit   bool            `json:"critical_exit"`
	HighUrgency    bool            `json:"high_urgency"`
	TriggeredRules []TriggeredRule `json:"triggered_rules"`
}

// PositionContext is attached to a TrendSignal when the ticker is held.
type PositionContext struct {
	Shares            float64          `json:"shares"`
	AvgCost           float64          `json:"avg_cost"`
	MarketValue       float64          `json:"market_value"`
	UnrealizedPnLPct  float64          `json:"unrealized_pnl_pct"`
	Legacy            bool             `json:"legacy_basis,omitempty"`
	StopSource        StopSource       `json:"stop_source"`
	TrailingReference float64          `json:"trailing_reference"`
	ExitLevels        ExitLevels       `json:"exit_levels"`
	ExitSignals       ExitSignalReport `json:"exit_signals"`
}

// PositionRisk is one row of the heat breakdown.
type PositionRisk struct {
	Ticker        string     `json:"ticker"`
	Shares        float64    `json:"shares"`
	CurrentPrice  float64    `json:"current_price"`
	HardStopPrice float64    `json:"hard_stop_price"`
	StopSource    StopSource `json:"stop_source"`
	AtRiskUSD     float64    `json:"at_risk_usd"`
	AtRiskPct     float64    `json:"at_risk_pct"`
}

// PortfolioHeatReport is the aggregate dollar-at-risk view across all open
// positions. heat_pct == total_at_risk / portfolio_value by construction.
type PortfolioHeatReport struct {
	PortfolioValue  float64        `json:"portfolio_value_usd"`
	TotalAtRiskUSD  float64        `json:"total_at_risk_usd"`
	HeatPct         float64        `json:"portfolio_heat_pct"`
	MaxHeatPct      float64        `json:"max_heat_pct"`
	CanAddPositions bool           `json:"can_add_new_positions"`
	Note            string         `json:"heat_note"`
	Breakdown       []PositionRisk `json:"position_breakdown"`
}

// PositionSize is the fixed-fraction sizing result for a prospective entry.
type PositionSize struct {
	PortfolioValue    float64 `json:"portfolio_value_usd"`
	RiskPct           float64 `json:"risk_pct"`
	RiskAmountUSD     float64 `json:"risk_amount_usd"`
	EntryPrice        float64 `json:"entry_price"`
	StopPrice         float64 `json:"stop_price"`
	RiskPerShare      float64 `json:"risk_per_share"`
	Shares            int     `json:"shares_to_buy"`
	PositionValueUSD  float64 `json:"position_value_usd"`
	PortfolioFraction float64 `json:"position_pct_of_portfolio"`
}
