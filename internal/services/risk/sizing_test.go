package risk

import (
	"testing"

	"RiskDesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionSizeBasic(t *testing.T) {
	// risk 1% of 100k = 1000; 5 per share -> 200 shares
	size, err := ComputePositionSize(100_000, 50, 45, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 200, size.Shares)
	assert.Equal(t, 1000.0, size.RiskAmountUSD)
	assert.Equal(t, 5.0, size.RiskPerShare)
	assert.Equal(t, 10_000.0, size.PositionValueUSD)
	assert.Equal(t, 0.1, size.PortfolioFraction)
}

func TestPositionSizeFloors(t *testing.T) {
	// 1000 / 5.5 = 181.81..., floor to 181
	size, err := ComputePositionSize(100_000, 50, 44.5, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 181, size.Shares)
}

func TestPositionSizeNeverZero(t *testing.T) {
	// tiny portfolio: risk budget 10, risk per share 50 -> 0.2 shares
	size, err := ComputePositionSize(1000, 500, 450, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 1, size.Shares)
}

func TestPositionSizeStopMustBeBelowEntry(t *testing.T) {
	_, err := ComputePositionSize(100_000, 50, 50, 0.01)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ComputePositionSize(100_000, 50, 55, 0.01)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPositionSizeInvalidInputs(t *testing.T) {
	_, err := ComputePositionSize(0, 50, 45, 0.01)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ComputePositionSize(100_000, 0, 45, 0.01)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ComputePositionSize(100_000, 50, -1, 0.01)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
