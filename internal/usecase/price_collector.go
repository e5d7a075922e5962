package usecase

import (
	"context"

	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	applogger "RiskDesk/pkg/logger"
)

// PriceCollector consumes the live trade stream and keeps the price cache
// current. It is the only writer of live prices.
type PriceCollector struct {
	stream  domrepo.PriceStream
	cache   domrepo.LivePriceCache
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewPriceCollector(stream domrepo.PriceStream, cache domrepo.LivePriceCache, metrics domrepo.Metrics, log *applogger.Logger) *PriceCollector {
	return &PriceCollector{stream: stream, cache: cache, metrics: metrics, log: log}
}

func (c *PriceCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	ticks, errs := c.stream.Read(ctx)
	go c.consume(ctx, ticks, errs)
	return nil
}

func (c *PriceCollector) consume(ctx context.Context, ticks <-chan *models.Tick, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				c.metrics.RecordTickerSkipped("stream_error")
				c.log.Warn("price stream error, reconnecting", applogger.Error(err))
				if rerr := c.stream.Reconnect(ctx); rerr != nil {
					c.log.Error("price stream reconnect failed", applogger.Error(rerr))
					return
				}
				// old channels are dead after a reconnect
				ticks, errs = c.stream.Read(ctx)
			}
		case t, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			if t == nil {
				continue
			}
			if err := c.cache.SetPrice(ctx, t.Symbol, t.Price); err != nil {
				c.log.Warn("live price write failed", applogger.String("symbol", t.Symbol), applogger.Error(err))
				continue
			}
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
		}
	}
}

func (c *PriceCollector) Stop() error { return c.stream.Close() }
