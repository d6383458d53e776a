package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/ledger"
)

func newReconcilerUnderTest(t *testing.T, mock *ledger.MockClient) *Reconciler {
	t.Helper()
	cache := NewCache(mock, testLogger())
	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	return NewReconciler(mock, cache, testLogger())
}

func TestConsume(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750", "20000")

	r := newReconcilerUnderTest(t, mock)

	result, err := r.Consume(context.Background(), "1", decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(550)))
	assert.False(t, result.WentNegative)
	assert.False(t, result.CacheStale)

	// Written back to the ledger as whole grams in the remaining-weight column.
	require.Len(t, mock.WriteCellCalls, 1)
	call := mock.WriteCellCalls[0]
	assert.Equal(t, int64(2), call.Row)
	assert.Equal(t, int64(ledger.ColRemainingWeight), call.Col)
	assert.Equal(t, int64(550), call.Value)

	// The cache was refreshed after the write.
	roll, ok := r.cache.LookupByID("1")
	require.True(t, ok)
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromInt(550)))
}

func TestConsumeAllowsNegative(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "500", "20000")

	r := newReconcilerUnderTest(t, mock)

	result, err := r.Consume(context.Background(), "1", decimal.NewFromInt(700))
	require.NoError(t, err)

	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(-200)))
	assert.True(t, result.WentNegative)

	assert.Equal(t, "-200", mock.InventoryRows[1][ledger.ColRemainingWeight-1])
}

func TestConsumeTruncatesFractions(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "500,5", "20000")

	r := newReconcilerUnderTest(t, mock)

	result, err := r.Consume(context.Background(), "1", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(400)))
}

func TestConsumeUnknownRoll(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750", "20000")

	r := newReconcilerUnderTest(t, mock)

	_, err := r.Consume(context.Background(), "ghost", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRollNotFound))

	assert.Empty(t, mock.WriteCellCalls, "no write on a failed lookup")
	assert.Equal(t, "750", mock.InventoryRows[1][ledger.ColRemainingWeight-1])
}

func TestConsumeWriteFailure(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750", "20000")

	r := newReconcilerUnderTest(t, mock)
	mock.WriteCellErr = assert.AnError

	_, err := r.Consume(context.Background(), "1", decimal.NewFromInt(100))
	require.Error(t, err)

	// Nothing was applied, locally or remotely.
	assert.Equal(t, "750", mock.InventoryRows[1][ledger.ColRemainingWeight-1])
	roll, ok := r.cache.LookupByID("1")
	require.True(t, ok)
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromInt(750)))
}

func TestConsumeRefreshFailureMarksCacheStale(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750", "20000")

	r := newReconcilerUnderTest(t, mock)
	mock.ListRollsErr = assert.AnError

	result, err := r.Consume(context.Background(), "1", decimal.NewFromInt(100))
	require.NoError(t, err, "a stale cache is not a deduction failure")

	assert.True(t, result.CacheStale)
	// The ledger holds the new value while the cache still serves the old one.
	assert.Equal(t, "650", mock.InventoryRows[1][ledger.ColRemainingWeight-1])
	roll, ok := r.cache.LookupByID("1")
	require.True(t, ok)
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromInt(750)))
}

func TestConsumeGarbageCellFailsWithoutWriting(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750g aprox", "20000")

	r := newReconcilerUnderTest(t, mock)

	_, err := r.Consume(context.Background(), "1", decimal.NewFromInt(50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrLedgerInconsistent))

	// The unreadable value stays on the sheet for an operator to inspect.
	assert.Empty(t, mock.WriteCellCalls)
	assert.Equal(t, "750g aprox", mock.InventoryRows[1][ledger.ColRemainingWeight-1])
}

func TestConsumeEmptyCellTreatedAsZero(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "", "20000")

	r := newReconcilerUnderTest(t, mock)

	result, err := r.Consume(context.Background(), "1", decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(-50)))
	assert.True(t, result.WentNegative)
}
