package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/services/risk"
	"RiskDesk/internal/services/signals"
	applogger "RiskDesk/pkg/logger"
	"RiskDesk/pkg/util"

	"github.com/google/uuid"
)

// BundleConfig carries the run-level knobs for bundle generation.
type BundleConfig struct {
	Watchlist    []string
	IndexTickers []string
	LookbackDays int // calendar days fetched for the breakout window
	Timeout      time.Duration
}

// BundleUseCase builds one SignalBundle per invocation: a fan-out over the
// trading universe plus a concurrent regime classification, gathered into an
// immutable snapshot. One ticker failing never aborts the rest.
type BundleUseCase struct {
	provider domrepo.BarProvider
	archive  domrepo.BarStore
	folio    domrepo.PortfolioStore
	metrics  domrepo.Metrics
	log      *applogger.Logger
	params   risk.Params
	cfg      BundleConfig

	mu   sync.RWMutex
	last *models.SignalBundle
}

func NewBundleUseCase(
	provider domrepo.BarProvider,
	archive domrepo.BarStore,
	folio domrepo.PortfolioStore,
	metrics domrepo.Metrics,
	log *applogger.Logger,
	params risk.Params,
	cfg BundleConfig,
) *BundleUseCase {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 60
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &BundleUseCase{
		provider: provider,
		archive:  archive,
		folio:    folio,
		metrics:  metrics,
		log:      log,
		params:   params,
		cfg:      cfg,
	}
}

// Build assembles a fresh bundle for the given breakout window (0 means the
// configured default). Partial results are valid output: tickers whose fetch
// fails or whose history is too short are logged and omitted.
func (u *BundleUseCase) Build(ctx context.Context, window int) (*models.SignalBundle, error) {
	start := time.Now()
	if window <= 0 {
		window = u.params.BreakoutWindow
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	snapshot, err := u.folio.Load(ctx)
	if err != nil {
		u.log.Warn("portfolio snapshot unavailable, signals run without position context", applogger.Error(err))
		snapshot = nil
	}

	universe := u.universe(snapshot)

	regimeCh := make(chan models.MarketRegime, 1)
	go func() { regimeCh <- u.classifyRegime(ctx) }()

	type result struct {
		ticker string
		signal models.TrendSignal
		err    error
	}
	ch := make(chan result, len(universe))
	for _, ticker := range universe {
		go func(ticker string) {
			sig, err := u.buildTicker(ctx, ticker, window, snapshot)
			ch <- result{ticker: ticker, signal: sig, err: err}
		}(ticker)
	}

	sigs := make(map[string]models.TrendSignal, len(universe))
	for range universe {
		r := <-ch
		if r.err != nil {
			u.metrics.RecordTickerSkipped(skipKind(r.err))
			u.log.Warn("ticker skipped", applogger.String("ticker", r.ticker), applogger.Error(r.err))
			continue
		}
		sigs[r.ticker] = r.signal
	}

	regime := <-regimeCh
	u.metrics.RecordRegime(string(regime.Regime))

	now := time.Now().UTC()
	bundle := &models.SignalBundle{
		RunID:        uuid.NewString(),
		GeneratedAt:  now,
		AsOfDate:     now.Format("2006-01-02"),
		Universe:     universe,
		Window:       window,
		MarketRegime: regime,
		Signals:      sigs,
		Attention:    collectAttention(sigs),
	}

	u.mu.Lock()
	u.last = bundle
	u.mu.Unlock()

	u.metrics.RecordLatency("bundle_build", time.Since(start).Seconds())
	u.metrics.RecordRun("ok")
	u.log.Info("signal bundle built",
		applogger.String("run_id", bundle.RunID),
		applogger.String("regime", string(regime.Regime)),
		applogger.Int("universe", len(universe)),
		applogger.Int("signals", len(sigs)),
	)
	return bundle, nil
}

// Latest returns the most recent bundle built this process lifetime, or nil.
// Bundles are immutable once published; callers must not mutate the result.
func (u *BundleUseCase) Latest() *models.SignalBundle {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.last
}

// LatestOrBuild serves today's cached bundle for the requested window when one
// exists, otherwise builds fresh. Ad-hoc windows always rebuild.
func (u *BundleUseCase) LatestOrBuild(ctx context.Context, window int) (*models.SignalBundle, error) {
	if window <= 0 {
		window = u.params.BreakoutWindow
	}
	if b := u.Latest(); b != nil && b.Window == window && b.AsOfDate == time.Now().UTC().Format("2006-01-02") {
		return b, nil
	}
	return u.Build(ctx, window)
}

// Regime classifies the broad market on demand, outside a full bundle run.
func (u *BundleUseCase) Regime(ctx context.Context) (*models.MarketRegime, error) {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()
	regime := u.classifyRegime(ctx)
	u.metrics.RecordRegime(string(regime.Regime))
	return &regime, nil
}

// universe merges the configured watchlist with every held ticker, deduplicated
// and sorted so runs are reproducible.
func (u *BundleUseCase) universe(snapshot *models.PortfolioSnapshot) []string {
	seen := make(map[string]struct{}, len(u.cfg.Watchlist))
	for _, t := range u.cfg.Watchlist {
		seen[t] = struct{}{}
	}
	if snapshot != nil {
		for _, pos := range snapshot.Positions {
			if pos.Ticker != "" {
				seen[pos.Ticker] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (u *BundleUseCase) buildTicker(ctx context.Context, ticker string, window int, snapshot *models.PortfolioSnapshot) (models.TrendSignal, error) {
	fetchStart := time.Now()
	from, to := util.LookbackRange(time.Now(), u.cfg.LookbackDays)
	bars, err := u.provider.DailyBars(ctx, ticker, from, to)
	u.metrics.RecordLatency("bar_fetch", time.Since(fetchStart).Seconds())
	if err != nil {
		return models.TrendSignal{}, err
	}

	if u.archive != nil {
		if err := u.archive.StoreBars(ctx, ticker, bars); err != nil {
			u.log.Warn("bar archive write failed", applogger.String("ticker", ticker), applogger.Error(err))
		}
	}

	sig, err := signals.ComputeBreakout(ticker, bars, window)
	if err != nil {
		return models.TrendSignal{}, err
	}

	var atr *float64
	if v, err := risk.ATR(bars, u.params.ATRPeriod); err == nil {
		atr = &v
	}
	sig.ATR = atr

	if pos := positionFor(snapshot, ticker); pos != nil {
		pc, err := signals.BuildPositionContext(*pos, sig, atr, u.params)
		if err != nil {
			u.log.Warn("position context skipped", applogger.String("ticker", ticker), applogger.Error(err))
		} else {
			sig.Position = pc
		}
	}
	return sig, nil
}

// classifyRegime fetches each configured index independently; a failed index
// is dropped and classification uses whatever succeeded.
func (u *BundleUseCase) classifyRegime(ctx context.Context) models.MarketRegime {
	maPeriod := u.params.RegimeMAPeriod
	// Roughly two calendar days per trading day; approximate around
	// holiday-heavy stretches but cheap and usually sufficient.
	lookback := maPeriod * 2

	indices := make(map[string]models.IndexState, len(u.cfg.IndexTickers))
	from, to := util.LookbackRange(time.Now(), lookback)
	for _, ticker := range u.cfg.IndexTickers {
		bars, err := u.provider.DailyBars(ctx, ticker, from, to)
		if err != nil {
			u.metrics.RecordTickerSkipped(skipKind(err))
			u.log.Warn("regime index skipped", applogger.String("ticker", ticker), applogger.Error(err))
			continue
		}
		st, err := signals.ComputeIndexState(ticker, bars, maPeriod)
		if err != nil {
			u.metrics.RecordTickerSkipped(skipKind(err))
			u.log.Warn("regime index skipped", applogger.String("ticker", ticker), applogger.Error(err))
			continue
		}
		indices[ticker] = st
	}
	return signals.ClassifyRegime(indices)
}

func collectAttention(sigs map[string]models.TrendSignal) []models.AttentionItem {
	var out []models.AttentionItem
	for ticker, sig := range sigs {
		if sig.Position == nil || !sig.Position.ExitSignals.AnyTriggered {
			continue
		}
		urgency := models.UrgencyHigh
		if sig.Position.ExitSignals.CriticalExit {
			urgency = models.UrgencyCritical
		}
		out = append(out, models.AttentionItem{
			Ticker:         ticker,
			CurrentPrice:   sig.Close,
			Urgency:        urgency,
			TriggeredRules: sig.Position.ExitSignals.TriggeredRules,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

func positionFor(snapshot *models.PortfolioSnapshot, ticker string) *models.Position {
	if snapshot == nil {
		return nil
	}
	for i := range snapshot.Positions {
		if snapshot.Positions[i].Ticker == ticker {
			return &snapshot.Positions[i]
		}
	}
	return nil
}

func skipKind(err error) string {
	switch {
	case errors.Is(err, models.ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, models.ErrDataUnavailable):
		return "data_unavailable"
	default:
		return "fetch_error"
	}
}
