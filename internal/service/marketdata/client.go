package marketdata

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"RiskDesk/internal/domain/models"
	drepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/service/ratelimit"
	xhttp "RiskDesk/pkg/http"
)

// Client fetches daily OHLCV candles from the vendor's REST API. Responses are
// cached in-process for the day so one run does not hammer the vendor when a
// symbol appears in both the universe and the regime index list.
type Client struct {
	apiKey   string
	baseURL  string
	http     *xhttp.Client
	limiter  *ratelimit.Limiter
	cache    *barCache
	cacheTTL time.Duration

	// token-bucket shape for the vendor's rate limit
	burst     float64
	perSecond float64
}

// New creates a daily-bar provider.
func New(apiKey, baseURL string, timeout, cacheTTL time.Duration) drepo.BarProvider {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:   ratelimit.New(),
		cache:     newBarCache(),
		cacheTTL:  cacheTTL,
		burst:     30,
		perSecond: 0.5,
	}
}

type candleResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []float64 `json:"v"`
}

// DailyBars returns ascending daily bars for [from, to]. A vendor miss or an
// empty series surfaces as ErrDataUnavailable; the caller decides whether that
// kills the ticker or the whole run (it never should).
func (c *Client) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	key := fmt.Sprintf("%s|%s|%s", symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if bars, ok := c.cache.get(key); ok {
		return bars, nil
	}

	if err := c.waitForSlot(ctx); err != nil {
		return nil, err
	}

	var cr candleResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {"D"},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
			"token":      {c.apiKey},
		},
	}, &cr)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %w", symbol, models.ErrDataUnavailable, err)
	}
	if cr.Status != "ok" || len(cr.Times) == 0 {
		return nil, fmt.Errorf("no candles for %s (status %q): %w", symbol, cr.Status, models.ErrDataUnavailable)
	}

	n := len(cr.Times)
	if len(cr.Opens) != n || len(cr.Highs) != n || len(cr.Lows) != n || len(cr.Closes) != n {
		return nil, fmt.Errorf("ragged candle arrays for %s: %w", symbol, models.ErrDataUnavailable)
	}

	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		var vol float64
		if i < len(cr.Volumes) {
			vol = cr.Volumes[i]
		}
		bars = append(bars, models.PriceBar{
			Date:   time.Unix(cr.Times[i], 0).UTC(),
			Open:   cr.Opens[i],
			High:   cr.Highs[i],
			Low:    cr.Lows[i],
			Close:  cr.Closes[i],
			Volume: vol,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	c.cache.set(key, bars, c.cacheTTL)
	return bars, nil
}

// waitForSlot blocks until the vendor rate limit admits one more request or
// the context expires.
func (c *Client) waitForSlot(ctx context.Context) error {
	for {
		if c.limiter.Allow("candles", c.burst, c.perSecond) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}
