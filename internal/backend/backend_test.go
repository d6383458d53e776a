package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/config"
	"github.com/lucasfauno/printdesk/internal/ledger"
	"github.com/lucasfauno/printdesk/internal/model"
	"github.com/lucasfauno/printdesk/internal/pricing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBackend(t *testing.T, mock *ledger.MockClient) *Backend {
	t.Helper()
	settings := config.NewSettingsStore(filepath.Join(t.TempDir(), "configuracion.json"))
	b := New(mock, settings, "Lucas", testLogger())
	b.now = func() time.Time {
		return time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	}
	return b
}

func TestNewLoadsDefaultCostConfig(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	cfg := b.CostConfig()
	assert.True(t, cfg.ElectricityPricePerKWh.Equal(decimal.NewFromInt(170)))
	assert.True(t, cfg.DesignHourPrice.Equal(decimal.NewFromInt(8500)))
}

func TestSaveCostConfig(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	cfg := b.CostConfig()
	cfg.ProfitMarginPercent = decimal.NewFromInt(80)
	require.NoError(t, b.SaveCostConfig(cfg))

	assert.True(t, b.CostConfig().ProfitMarginPercent.Equal(decimal.NewFromInt(80)))
	// Persisted, not just adopted in memory.
	assert.True(t, b.settings.Load().ProfitMarginPercent.Equal(decimal.NewFromInt(80)))
}

func TestSaveCostConfigRejectsInvalid(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	cfg := b.CostConfig()
	cfg.ElectricityPricePerKWh = decimal.NewFromInt(-1)

	err := b.SaveCostConfig(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
	// The in-memory config keeps its previous value.
	assert.True(t, b.CostConfig().ElectricityPricePerKWh.Equal(decimal.NewFromInt(170)))
}

func TestComputeQuoteUsesCurrentConfig(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	quote, err := b.ComputeQuote(pricing.JobParams{
		BaseWeightGrams:   decimal.NewFromInt(100),
		WasteFraction:     decimal.NewFromFloat(0.1),
		PrintHours:        decimal.NewFromInt(2),
		MaterialCostPerKg: decimal.NewFromInt(20000),
		Quantity:          3,
	})
	require.NoError(t, err)
	assert.True(t, quote.BatchTotal.Equal(decimal.NewFromInt(16008)))
}

func TestAddRoll(t *testing.T) {
	mock := ledger.NewMockClient()
	b := newTestBackend(t, mock)

	roll, err := b.AddRoll(context.Background(), AddRollParams{
		Brand:              "Grilon3",
		MaterialType:       "PLA",
		Color:              "Rojo",
		Matte:              true,
		InitialWeightGrams: decimal.NewFromInt(1000),
		SpoolPrice:         decimal.NewFromInt(20000),
	})
	require.NoError(t, err)

	// The id is the creation instant at nanosecond resolution.
	wantID := "1742034600000000000"
	assert.Equal(t, wantID, roll.ID)
	assert.Equal(t, "15/03/2025", roll.CreatedAt)
	assert.Equal(t, model.FinishMatte, roll.Finish)
	assert.True(t, roll.RemainingWeight.Equal(roll.InitialWeight))

	require.Len(t, mock.InventoryRows, 2)
	row := mock.InventoryRows[1]
	require.Len(t, row, ledger.RollColumnCount)
	assert.Equal(t, []string{wantID, "15/03/2025", "Grilon3", "PLA", "Rojo", "Matte", "1000", "1000", "20000"}, row)

	// The cache picked the new roll up.
	cached, ok := b.LookupRoll(wantID)
	require.True(t, ok)
	assert.Equal(t, "Rojo", cached.Color)
}

func TestAddRollValidation(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	tests := []struct {
		name   string
		params AddRollParams
	}{
		{
			name: "missing color",
			params: AddRollParams{
				InitialWeightGrams: decimal.NewFromInt(1000),
			},
		},
		{
			name: "zero weight",
			params: AddRollParams{
				Color: "Rojo",
			},
		},
		{
			name: "negative price",
			params: AddRollParams{
				Color:              "Rojo",
				InitialWeightGrams: decimal.NewFromInt(1000),
				SpoolPrice:         decimal.NewFromInt(-1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.AddRoll(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidInput))
		})
	}
}

func TestAddRollLedgerFailure(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.AppendRollErr = assert.AnError
	b := newTestBackend(t, mock)

	_, err := b.AddRoll(context.Background(), AddRollParams{
		Color:              "Rojo",
		InitialWeightGrams: decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Len(t, mock.InventoryRows, 1)
}

func TestConsumeStock(t *testing.T) {
	mock := ledger.NewMockClient()
	mock.SeedRoll("1", "01/02/2025", "Grilon3", "PLA", "Rojo", "Normal", "1000", "750", "20000")
	b := newTestBackend(t, mock)

	result, err := b.ConsumeStock(context.Background(), "1", decimal.NewFromInt(330))
	require.NoError(t, err)
	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(420)))
	assert.False(t, result.WentNegative)
}

func TestNewPrintJobRecord(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	quote, err := b.ComputeQuote(pricing.JobParams{
		BaseWeightGrams:   decimal.NewFromInt(100),
		WasteFraction:     decimal.NewFromFloat(0.1),
		PrintHours:        decimal.NewFromInt(2),
		MaterialCostPerKg: decimal.NewFromInt(20000),
		Quantity:          3,
	})
	require.NoError(t, err)

	record := b.NewPrintJobRecord("Carla", "Benchy", "Grilon3 PLA - Rojo", "100", "2h 0m", "0 hs", quote)

	assert.Equal(t, "15/03/2025", record.Date)
	assert.Equal(t, "Lucas", record.Operator)
	assert.Equal(t, model.KindPrintJob, record.Kind)
	assert.Equal(t, int64(3), record.Quantity)
	assert.True(t, record.TotalPrice.Equal(decimal.NewFromInt(16008)))
	assert.True(t, record.UnitPrice.Equal(decimal.NewFromInt(5336)))
}

func TestNewDirectSaleRecord(t *testing.T) {
	b := newTestBackend(t, ledger.NewMockClient())

	quote, err := b.ComputeDirectSale(2, decimal.NewFromInt(750))
	require.NoError(t, err)

	record := b.NewDirectSaleRecord("Diego", "Llavero", quote)

	assert.Equal(t, model.KindDirectSale, record.Kind)
	assert.Equal(t, "-", record.MaterialLabel)
	assert.Equal(t, "0", record.WeightGrams)
	assert.Equal(t, "N/A", record.PrintDuration)
	assert.Equal(t, "-", record.DesignHours)
	assert.True(t, record.TotalPrice.Equal(decimal.NewFromInt(1500)))
	assert.True(t, record.UnitPrice.Equal(decimal.NewFromInt(750)))
}

func TestHistoryRoundTrip(t *testing.T) {
	mock := ledger.NewMockClient()
	b := newTestBackend(t, mock)

	quote, err := b.ComputeDirectSale(1, decimal.NewFromInt(500))
	require.NoError(t, err)

	record := b.NewDirectSaleRecord("Carla", "Maceta", quote)
	require.NoError(t, b.RecordTransaction(context.Background(), record))

	entries, err := b.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Carla", entries[0][2])

	require.NoError(t, b.DeleteHistoryEntry(context.Background(), 0))

	entries, err = b.ListHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
