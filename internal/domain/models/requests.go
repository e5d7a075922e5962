package models

// Requests for the risk API endpoints. Defined in domain for consistency and reuse.

type ExitLevelsRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
}

type SizeRequest struct {
	EntryPrice float64 `json:"entry_price" validate:"required,gt=0"`
	StopPrice  float64 `json:"stop_price" validate:"required,gt=0"`
	RiskPct    float64 `json:"risk_pct" default:"0.01" validate:"gt=0,lte=0.05"`
}

type SignalsRequest struct {
	Window int `query:"window" json:"window" default:"20" validate:"gte=5,lte=120"`
}
