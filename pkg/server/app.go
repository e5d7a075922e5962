package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/usecase"
	pkgch "RiskDesk/pkg/clickhouse"
	"RiskDesk/pkg/config"
	xhttp "RiskDesk/pkg/http"
	applogger "RiskDesk/pkg/logger"

	"github.com/robfig/cron/v3"
)

// App encapsulates the entire application lifecycle: HTTP API, the scheduled
// daily bundle run, and the live price collector.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	bundles   *usecase.BundleUseCase
	collector *usecase.PriceCollector
	publisher domrepo.BundlePublisher
	chClient  *pkgch.Client

	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	sched       *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	bundles *usecase.BundleUseCase,
	collector *usecase.PriceCollector,
	publisher domrepo.BundlePublisher,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		bundles:   bundles,
		collector: collector,
		publisher: publisher,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start the live price collector
	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			a.log.Warn("price collector start failed, heat falls back to avg cost", applogger.Error(err))
		} else {
			a.log.Info("price collector started", applogger.Strings("symbols", a.cfg.Universe.Watchlist))
		}
	}

	// Schedule the daily bundle run
	if spec := a.cfg.Bundle.CronSpec; spec != "" {
		a.sched = cron.New()
		if _, err := a.sched.AddFunc(spec, func() { a.runBundle(ctx) }); err != nil {
			a.log.Error("cron schedule invalid", applogger.String("spec", spec), applogger.Error(err))
			return err
		}
		a.sched.Start()
		a.log.Info("bundle run scheduled", applogger.String("spec", spec))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runBundle executes one scheduled build-and-publish cycle. Failures are
// logged and counted; the next scheduled run starts clean.
func (a *App) runBundle(ctx context.Context) {
	bundle, err := a.bundles.Build(ctx, 0)
	if err != nil {
		a.log.Error("scheduled bundle run failed", applogger.Error(err))
		return
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, bundle); err != nil {
			a.log.Error("bundle publish failed", applogger.String("run_id", bundle.RunID), applogger.Error(err))
			return
		}
	}
	a.log.Info("bundle published",
		applogger.String("run_id", bundle.RunID),
		applogger.String("asof", bundle.AsOfDate),
		applogger.Int("signals", len(bundle.Signals)),
	)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.sched != nil {
		// waits for an in-flight scheduled run
		<-a.sched.Stop().Done()
	}

	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			a.log.Warn("price collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
