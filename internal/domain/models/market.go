package models

import "time"

// PriceBar represents one daily OHLCV record, provider-supplied trading days
// only, ordered ascending by date.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// TrendSignal is the per-ticker 20-day channel breakout readout.
// High20D/Low20D come from the window immediately preceding the latest bar;
// the latest bar never participates in its own channel.
type TrendSignal struct {
	Ticker    string           `json:"-"`
	Close     float64          `json:"close"`
	High20D   float64          `json:"20d_high"`
	Low20D    float64          `json:"20d_low"`
	Breakout  bool             `json:"breakout"`
	Breakdown bool             `json:"breakdown"`
	ATR       *float64         `json:"atr,omitempty"`
	Position  *PositionContext `json:"position,omitempty"`
}

// RegimeLabel classifies the broad market.
type RegimeLabel string

const (
	RegimeBull    RegimeLabel = "BULL"
	RegimeNeutral RegimeLabel = "NEUTRAL"
	RegimeBear    RegimeLabel = "BEAR"
	RegimeUnknown RegimeLabel = "UNKNOWN"
)

// IndexState captures one broad-market index relative to its long moving average.
type IndexState struct {
	Ticker        string  `json:"ticker"`
	Close         float64 `json:"close"`
	MovingAverage float64 `json:"ma"`
	AboveMA       bool    `json:"above_ma"`
	PctFromMA     float64 `json:"pct_from_ma"`
}

// MarketRegime is the aggregate index classification with an actionable note.
type MarketRegime struct {
	Regime  RegimeLabel           `json:"regime"`
	Note    string                `json:"note"`
	Indices map[string]IndexState `json:"indices"`
}

// AttentionItem flags a held ticker whose exit evaluation triggered.
type AttentionItem struct {
	Ticker         string          `json:"ticker"`
	CurrentPrice   float64         `json:"current_price"`
	Urgency        Urgency         `json:"urgency"`
	TriggeredRules []TriggeredRule `json:"triggered_rules"`
}

// SignalBundle is one immutable per-run snapshot of the whole universe.
// Each run produces a new bundle; there is no incremental mutation.
type SignalBundle struct {
	RunID        string                 `json:"run_id"`
	GeneratedAt  time.Time              `json:"generated_at"`
	AsOfDate     string                 `json:"asof_date"`
	Universe     []string               `json:"universe"`
	Window       int                    `json:"window"`
	MarketRegime MarketRegime           `json:"market_regime"`
	Signals      map[string]TrendSignal `json:"signals"`
	Attention    []AttentionItem        `json:"positions_requiring_attention,omitempty"`
}
