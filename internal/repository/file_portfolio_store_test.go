package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "positions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFilePortfolioStoreLoad(t *testing.T) {
	path := writeSnapshot(t, `{
		"as_of": "2024-10-10",
		"portfolio_value_usd": 250000,
		"positions": [
			{"ticker": "AAPL", "shares": 100, "avg_cost": 180.5},
			{"ticker": "NVDA", "shares": 40, "avg_cost": 95, "override_stop_price": 110}
		]
	}`)

	snap, err := NewFilePortfolioStore(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250000.0, snap.PortfolioValue)
	require.Len(t, snap.Positions, 2)
	assert.Equal(t, "AAPL", snap.Positions[0].Ticker)
	require.NotNil(t, snap.Positions[1].OverrideStopPrice)
	assert.Equal(t, 110.0, *snap.Positions[1].OverrideStopPrice)
	assert.Nil(t, snap.Positions[0].OverrideStopPrice)
}

func TestFilePortfolioStoreDropsMalformedPositions(t *testing.T) {
	path := writeSnapshot(t, `{
		"portfolio_value_usd": 100000,
		"positions": [
			{"ticker": "AAPL", "shares": 100, "avg_cost": 180},
			{"ticker": "", "shares": 10, "avg_cost": 50},
			{"ticker": "MSFT", "shares": 0, "avg_cost": 300},
			{"ticker": "AMZN", "shares": 5, "avg_cost": 0}
		]
	}`)

	snap, err := NewFilePortfolioStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Positions, 1)
	assert.Equal(t, "AAPL", snap.Positions[0].Ticker)
}

func TestFilePortfolioStoreMissingFile(t *testing.T) {
	_, err := NewFilePortfolioStore(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestFilePortfolioStoreBadJSON(t *testing.T) {
	path := writeSnapshot(t, `{not json`)
	_, err := NewFilePortfolioStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDataUnavailable)
}
