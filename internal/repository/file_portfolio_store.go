package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"RiskDesk/internal/domain/models"
	applogger "RiskDesk/pkg/logger"
	"RiskDesk/pkg/util"
)

// staleSnapshotAge is how old the journal's snapshot can get before the
// engine starts complaining about it in the logs.
const staleSnapshotAge = 7 * 24 * time.Hour

// FilePortfolioStore reads the open-positions snapshot maintained by the
// trade journal. The engine only ever reads it; fills and closes are
// recorded elsewhere.
type FilePortfolioStore struct {
	path string
	l    *applogger.Logger
}

func NewFilePortfolioStore(path string) *FilePortfolioStore {
	return &FilePortfolioStore{path: path}
}

// SetLogger injects a structured logger.
func (s *FilePortfolioStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *FilePortfolioStore) Load(ctx context.Context) (*models.PortfolioSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("portfolio snapshot %s: %w", s.path, models.ErrDataUnavailable)
		}
		return nil, fmt.Errorf("read portfolio snapshot: %w", err)
	}

	var snap models.PortfolioSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse portfolio snapshot: %w", err)
	}

	if snap.AsOf != "" && s.l != nil {
		asOf := util.ParseTimeDefault(snap.AsOf, time.Now())
		if time.Since(asOf) > staleSnapshotAge {
			s.l.Warn("portfolio snapshot is stale",
				applogger.String("as_of", snap.AsOf),
				applogger.String("path", s.path),
			)
		}
	}

	// Drop malformed entries rather than failing the whole run.
	kept := snap.Positions[:0]
	for _, p := range snap.Positions {
		if p.Ticker == "" || p.Shares <= 0 || p.AvgCost <= 0 {
			if s.l != nil {
				s.l.Warn("skipping malformed position",
					applogger.String("ticker", p.Ticker),
					applogger.Float64("shares", p.Shares),
					applogger.Float64("avg_cost", p.AvgCost),
				)
			}
			continue
		}
		kept = append(kept, p)
	}
	snap.Positions = kept
	return &snap, nil
}
