package usecase

import (
	"context"
	"fmt"

	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/services/risk"
	"RiskDesk/internal/services/signals"
	applogger "RiskDesk/pkg/logger"
)

// PortfolioUseCase serves the portfolio-wide risk queries: heat, per-position
// exit levels, and prospective-entry sizing.
type PortfolioUseCase struct {
	folio   domrepo.PortfolioStore
	prices  domrepo.LivePriceCache
	archive domrepo.BarStore
	metrics domrepo.Metrics
	log     *applogger.Logger
	params  risk.Params
}

func NewPortfolioUseCase(
	folio domrepo.PortfolioStore,
	prices domrepo.LivePriceCache,
	archive domrepo.BarStore,
	metrics domrepo.Metrics,
	log *applogger.Logger,
	params risk.Params,
) *PortfolioUseCase {
	return &PortfolioUseCase{
		folio:   folio,
		prices:  prices,
		archive: archive,
		metrics: metrics,
		log:     log,
		params:  params,
	}
}

// Heat recomputes portfolio heat from the current snapshot and whatever live
// prices the cache has; cache misses fall back to avg cost inside the
// aggregator.
func (u *PortfolioUseCase) Heat(ctx context.Context) (*models.PortfolioHeatReport, error) {
	snapshot, err := u.folio.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	if snapshot.PortfolioValue <= 0 {
		return nil, fmt.Errorf("portfolio value not set: %w", models.ErrInvalidInput)
	}

	tickers := make([]string, 0, len(snapshot.Positions))
	for _, pos := range snapshot.Positions {
		tickers = append(tickers, pos.Ticker)
	}
	prices, err := u.prices.Prices(ctx, tickers)
	if err != nil {
		u.log.Warn("live prices unavailable, falling back to avg cost", applogger.Error(err))
		prices = map[string]float64{}
	}

	report, err := risk.ComputePortfolioHeat(snapshot.Positions, prices, snapshot.PortfolioValue, u.params)
	if err != nil {
		return nil, err
	}
	u.metrics.RecordHeat(report.HeatPct)
	return report, nil
}

// ExitLevels computes the current level set and triggered rules for one held
// ticker from the archived bar history. Missing ATR or channel history
// degrades the answer rather than failing it.
func (u *PortfolioUseCase) ExitLevels(ctx context.Context, ticker string) (*models.TrendSignal, error) {
	snapshot, err := u.folio.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	pos := positionFor(snapshot, ticker)
	if pos == nil {
		return nil, fmt.Errorf("no open position for %s: %w", ticker, models.ErrInvalidInput)
	}

	bars, err := u.archive.LatestNBars(ctx, ticker, u.params.BreakoutWindow+1)
	if err != nil {
		return nil, fmt.Errorf("bar history for %s: %w", ticker, err)
	}

	sig, err := signals.ComputeBreakout(ticker, bars, u.params.BreakoutWindow)
	if err != nil {
		return nil, err
	}

	if prices, perr := u.prices.Prices(ctx, []string{ticker}); perr == nil {
		if live, ok := prices[ticker]; ok && live > 0 {
			sig.Close = risk.Round2(live)
		}
	}

	var atr *float64
	if v, aerr := risk.ATR(bars, u.params.ATRPeriod); aerr == nil {
		atr = &v
	}
	sig.ATR = atr

	pc, err := signals.BuildPositionContext(*pos, sig, atr, u.params)
	if err != nil {
		return nil, err
	}
	sig.Position = pc
	return &sig, nil
}

// Size computes fixed-fraction sizing for a prospective entry against the
// current portfolio value.
func (u *PortfolioUseCase) Size(ctx context.Context, req models.SizeRequest) (*models.PositionSize, error) {
	snapshot, err := u.folio.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	riskPct := req.RiskPct
	if riskPct <= 0 {
		riskPct = u.params.RiskPerTradePct
	}
	size, err := risk.ComputePositionSize(snapshot.PortfolioValue, req.EntryPrice, req.StopPrice, riskPct)
	if err != nil {
		return nil, err
	}
	return &size, nil
}
