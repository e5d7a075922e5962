package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var regimeLabels = []string{"BULL", "NEUTRAL", "BEAR", "UNKNOWN"}

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal      *prometheus.CounterVec
	tickersSkipped *prometheus.CounterVec
	heatPct        prometheus.Gauge
	regime         *prometheus.GaugeVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdesk_runs_total",
				Help: "Total signal bundle runs by outcome",
			},
			[]string{"outcome"},
		),
		tickersSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdesk_tickers_skipped_total",
				Help: "Tickers dropped from a run by reason",
			},
			[]string{"reason"},
		),
		heatPct: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "riskdesk_portfolio_heat_pct",
				Help: "Latest computed portfolio heat as a fraction of equity",
			},
		),
		regime: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riskdesk_market_regime",
				Help: "Current market regime, one-hot per label",
			},
			[]string{"label"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riskdesk_last_price",
				Help: "Last streamed trade price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskdesk_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRun records one completed bundle run.
func (r *Recorder) RecordRun(outcome string) {
	r.runsTotal.WithLabelValues(outcome).Inc()
}

// RecordTickerSkipped records a ticker dropped from a run.
func (r *Recorder) RecordTickerSkipped(kind string) {
	r.tickersSkipped.WithLabelValues(kind).Inc()
}

// RecordHeat records the latest portfolio heat fraction.
func (r *Recorder) RecordHeat(pct float64) {
	r.heatPct.Set(pct)
}

// RecordRegime sets the one-hot regime gauge.
func (r *Recorder) RecordRegime(label string) {
	for _, l := range regimeLabels {
		v := 0.0
		if l == label {
			v = 1.0
		}
		r.regime.WithLabelValues(l).Set(v)
	}
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
