package di

import (
	"context"
	"fmt"
	"time"

	"RiskDesk/internal/domain/repository"
	"RiskDesk/internal/handler/api"
	internalrepo "RiskDesk/internal/repository"
	"RiskDesk/internal/service/marketdata"
	"RiskDesk/internal/services/risk"
	"RiskDesk/internal/usecase"
	pkgcache "RiskDesk/pkg/cache"
	pkgch "RiskDesk/pkg/clickhouse"
	"RiskDesk/pkg/config"
	xhttp "RiskDesk/pkg/http"
	pkgkafka "RiskDesk/pkg/kafka"
	applogger "RiskDesk/pkg/logger"
	"RiskDesk/pkg/metrics"
	"RiskDesk/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the bar
// archive schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS riskdesk",
		"CREATE TABLE IF NOT EXISTS riskdesk.daily_bars (symbol String, date Date, open Float64, high Float64, low Float64, close Float64, volume Float64) ENGINE=ReplacingMergeTree ORDER BY (symbol, date)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideRedisCache creates the Redis client behind the live price cache.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRiskParams builds risk parameters, config overriding defaults.
func ProvideRiskParams(cfg *config.Config) risk.Params {
	p := risk.DefaultParams()
	if v := cfg.Risk.RiskPerTradePct; v > 0 {
		p.RiskPerTradePct = v
	}
	if v := cfg.Risk.HardStopPct; v > 0 {
		p.HardStopPct = v
	}
	if v := cfg.Risk.ProfitTargetPct; v > 0 {
		p.ProfitTargetPct = v
	}
	if v := cfg.Risk.TrailingStopPct; v > 0 {
		p.TrailingStopPct = v
	}
	if v := cfg.Risk.TimeStopDays; v > 0 {
		p.TimeStopDays = v
	}
	if v := cfg.Risk.ATRMultiplier; v > 0 {
		p.ATRMultiplier = v
	}
	if v := cfg.Risk.ATRPeriod; v > 0 {
		p.ATRPeriod = v
	}
	if v := cfg.Risk.MaxPortfolioHeat; v > 0 {
		p.MaxPortfolioHeat = v
	}
	if v := cfg.Risk.BreakoutWindow; v > 0 {
		p.BreakoutWindow = v
	}
	if v := cfg.Risk.RegimeMAPeriod; v > 0 {
		p.RegimeMAPeriod = v
	}
	return p
}

// ProvideBarProvider creates the vendor daily-bar client.
func ProvideBarProvider(cfg *config.Config) repository.BarProvider {
	return marketdata.New(
		cfg.MarketData.APIKey,
		cfg.MarketData.BaseURL,
		cfg.MarketData.RequestTimeout,
		cfg.MarketData.CacheTTL,
	)
}

// ProvideBarStore creates the ClickHouse bar archive.
func ProvideBarStore(chClient *pkgch.Client, log *applogger.Logger) repository.BarStore {
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(log)
	return store
}

// ProvidePortfolioStore creates the open-positions snapshot reader.
func ProvidePortfolioStore(cfg *config.Config, log *applogger.Logger) repository.PortfolioStore {
	store := internalrepo.NewFilePortfolioStore(cfg.Portfolio.SnapshotPath)
	store.SetLogger(log)
	return store
}

// ProvideLivePrices creates the Redis live-price cache.
func ProvideLivePrices(cache *pkgcache.RedisCache) repository.LivePriceCache {
	return internalrepo.NewRedisLivePrices(cache)
}

// ProvideBundlePublisher creates the Kafka bundle publisher.
func ProvideBundlePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.BundlePublisher {
	return internalrepo.NewKafkaBundlePublisher(producer, cfg.Kafka.BundleTopic)
}

// ProvidePriceStream creates the vendor WebSocket trade stream over the
// watchlist.
func ProvidePriceStream(cfg *config.Config) repository.PriceStream {
	return marketdata.NewStream(
		cfg.MarketData.APIKey,
		cfg.MarketData.WebSocketURL,
		cfg.Universe.Watchlist,
		cfg.MarketData.ReconnectDelay,
		cfg.MarketData.PingInterval,
	)
}

// ProvideBundleUseCase creates the bundle builder.
func ProvideBundleUseCase(
	provider repository.BarProvider,
	archive repository.BarStore,
	folio repository.PortfolioStore,
	m repository.Metrics,
	log *applogger.Logger,
	params risk.Params,
	cfg *config.Config,
) *usecase.BundleUseCase {
	return usecase.NewBundleUseCase(provider, archive, folio, m, log, params, usecase.BundleConfig{
		Watchlist:    cfg.Universe.Watchlist,
		IndexTickers: cfg.Universe.IndexTickers,
		LookbackDays: cfg.Bundle.LookbackDays,
		Timeout:      cfg.Bundle.Timeout,
	})
}

// ProvidePortfolioUseCase creates the portfolio risk queries.
func ProvidePortfolioUseCase(
	folio repository.PortfolioStore,
	prices repository.LivePriceCache,
	archive repository.BarStore,
	m repository.Metrics,
	log *applogger.Logger,
	params risk.Params,
) *usecase.PortfolioUseCase {
	return usecase.NewPortfolioUseCase(folio, prices, archive, m, log, params)
}

// ProvidePriceCollector creates the live price collector.
func ProvidePriceCollector(
	stream repository.PriceStream,
	prices repository.LivePriceCache,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.PriceCollector {
	return usecase.NewPriceCollector(stream, prices, m, log)
}

// ProvideHTTPHandler assembles all route groups into one handler.
func ProvideHTTPHandler(
	log *applogger.Logger,
	bundles *usecase.BundleUseCase,
	folio *usecase.PortfolioUseCase,
	archive repository.BarStore,
) xhttp.Handler {
	return &routes{
		signals:   api.NewSignalsHandler(log, bundles),
		portfolio: api.NewPortfolioHandler(log, folio, archive),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	bundles *usecase.BundleUseCase,
	collector *usecase.PriceCollector,
	publisher repository.BundlePublisher,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *server.App {
	app := server.New(cfg, log, bundles, collector, publisher, chClient)
	app.SetHTTPHandler(handler)
	return app
}
