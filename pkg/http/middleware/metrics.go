package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskdesk_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskdesk_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method"},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "riskdesk_http_in_flight_requests",
			Help: "In-flight HTTP requests",
		},
	)

	metricsOnce sync.Once
)

// Metrics records per-route request counters and latency. Routes are
// labelled with the Echo route template, not the raw URL, to keep
// cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	metricsOnce.Do(func() {
		prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInFlight)
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			method := c.Request().Method

			httpInFlight.Inc()
			start := time.Now()
			err := next(c)
			httpInFlight.Dec()

			httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
			httpRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
