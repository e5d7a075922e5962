package repository

import (
	"context"
	"time"

	"RiskDesk/internal/domain/models"
)

// BarProvider fetches daily OHLCV history from the external market-data
// vendor. Implementations return models.ErrDataUnavailable when the vendor
// has nothing for the symbol/range.
type BarProvider interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error)
}

// BarStore archives and serves daily bars.
type BarStore interface {
	StoreBars(ctx context.Context, symbol string, bars []models.PriceBar) error
	LatestNBars(ctx context.Context, symbol string, n int) ([]models.PriceBar, error)
	Health(ctx context.Context) error
}

// PortfolioStore reads the externally maintained open-positions snapshot.
// The engine never writes positions.
type PortfolioStore interface {
	Load(ctx context.Context) (*models.PortfolioSnapshot, error)
}

// LivePriceCache holds the latest trade price per symbol, fed by the price
// stream and read by the heat aggregator. A missing symbol is not an error;
// callers fall back to avg cost.
type LivePriceCache interface {
	SetPrice(ctx context.Context, symbol string, price float64) error
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// PriceStream is a live trade feed keeping the price cache current between
// daily runs.
type PriceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// BundlePublisher hands completed signal bundles to downstream consumers.
type BundlePublisher interface {
	Publish(ctx context.Context, b *models.SignalBundle) error
	Close() error
}

// Metrics records operational counters and gauges for the engine.
type Metrics interface {
	RecordRun(outcome string)
	RecordTickerSkipped(kind string)
	RecordHeat(pct float64)
	RecordRegime(label string)
	RecordLatency(op string, seconds float64)
	RecordLastPrice(symbol string, price float64)
}
