package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"RiskDesk/internal/domain/models"
	pkgch "RiskDesk/pkg/clickhouse"
	applogger "RiskDesk/pkg/logger"
)

const barsTable = "riskdesk.daily_bars"

// CHBarStore archives daily OHLCV bars in ClickHouse and serves them back to
// the exit-levels path, so a vendor outage does not blind held positions.
type CHBarStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHBarStore) StoreBars(ctx context.Context, symbol string, bars []models.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()

	// Chunk the multi-row VALUES insert to bound statement size.
	const chunkSize = 2000
	for lo := 0; lo < len(bars); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(bars) {
			hi = len(bars)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*7)
		for _, b := range bars[lo:hi] {
			if b.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				symbol,
				b.Date,
				b.Open,
				b.High,
				b.Low,
				b.Close,
				b.Volume,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (symbol, date, open, high, low, close, volume) VALUES %s", barsTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_bars insert error",
					applogger.String("symbol", symbol),
					applogger.Int("rows", hi-lo),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store bars: %w", err)
		}
	}
	if s.l != nil {
		s.l.Debug("clickhouse store_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(bars)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHBarStore) LatestNBars(ctx context.Context, symbol string, n int) ([]models.PriceBar, error) {
	start := time.Now()
	// FINAL collapses duplicate (symbol, date) rows left by re-archiving.
	const qtpl = `
        SELECT date, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ?
        ORDER BY date DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, barsTable)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars query error",
				applogger.String("symbol", symbol),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.PriceBar, 0, n)
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_bars scan error",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		tmp = append(tmp, b)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars rows error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Debug("clickhouse latest_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func (s *CHBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
