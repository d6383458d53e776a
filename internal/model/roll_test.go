package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfauno/printdesk/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain integer", "500", "500", false},
		{"dot decimal", "12.5", "12.5", false},
		{"comma decimal", "12,5", "12.5", false},
		{"padded", "  750 ", "750", false},
		{"negative", "-200", "-200", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"garbage", "n/a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestRollFromRecord_CapitalizedHeaders(t *testing.T) {
	roll := RollFromRecord(map[string]string{
		"ID":           "1700000000000000000",
		"Fecha":        "15/03/2025",
		"Marca":        "Grilon3",
		"Tipo":         "PLA",
		"Color":        "Rojo",
		"Acabado":      "Matte",
		"Peso_Inicial": "1000",
		"Peso_Actual":  "750,5",
		"Precio_Rollo": "20000",
	})

	assert.Equal(t, "1700000000000000000", roll.ID)
	assert.Equal(t, "15/03/2025", roll.CreatedAt)
	assert.Equal(t, "Grilon3", roll.Brand)
	assert.Equal(t, "PLA", roll.MaterialType)
	assert.Equal(t, "Rojo", roll.Color)
	assert.Equal(t, FinishMatte, roll.Finish)
	assert.True(t, roll.InitialWeight.Equal(decimal.NewFromInt(1000)))
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromFloat(750.5)))
	assert.True(t, roll.SpoolPrice.Equal(decimal.NewFromInt(20000)))
}

func TestRollFromRecord_LowercaseHeaders(t *testing.T) {
	roll := RollFromRecord(map[string]string{
		"id":           "42",
		"marca":        "eSun",
		"tipo":         "PETG",
		"color":        "Negro",
		"acabado":      "Normal",
		"peso_inicial": "1000",
		"peso_actual":  "400",
		"precio_rollo": "18500",
	})

	assert.Equal(t, "42", roll.ID)
	assert.Equal(t, "eSun", roll.Brand)
	assert.Equal(t, "PETG", roll.MaterialType)
	assert.Equal(t, FinishStandard, roll.Finish)
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromInt(400)))
}

func TestRollFromRecord_Fallbacks(t *testing.T) {
	roll := RollFromRecord(map[string]string{
		"ID":           "7",
		"Color":        "Azul",
		"Peso_Actual":  "not a number",
		"Precio_Rollo": "",
	})

	assert.Equal(t, "Gen", roll.Brand)
	assert.Equal(t, "MAT", roll.MaterialType)
	assert.Equal(t, FinishStandard, roll.Finish)
	// Missing initial weight falls back to a full kilo spool.
	assert.True(t, roll.InitialWeight.Equal(decimal.NewFromInt(1000)))
	// Unparseable remaining weight falls back to the initial weight.
	assert.True(t, roll.RemainingWeight.Equal(decimal.NewFromInt(1000)))
	assert.True(t, roll.SpoolPrice.IsZero())
}

func TestUnitCostPerKg(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		price   string
		want    string
	}{
		{"full kilo spool", "1000", "20000", "20000"},
		{"half kilo spool", "500", "20000", "40000"},
		{"zero initial weight", "0", "20000", "0"},
		{"free sample", "1000", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := FilamentRoll{
				InitialWeight: decimal.RequireFromString(tt.initial),
				SpoolPrice:    decimal.RequireFromString(tt.price),
			}
			got := roll.UnitCostPerKg()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		want      StockStatus
	}{
		{"mostly full", "800", StockFull},
		{"just over half", "501", StockFull},
		{"exactly half", "500", StockMedium},
		{"exactly twenty percent", "200", StockMedium},
		{"under twenty percent", "199", StockLow},
		{"nearly gone", "1", StockLow},
		{"spent", "0", StockEmpty},
		{"oversold", "-50", StockEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := FilamentRoll{
				InitialWeight:   decimal.NewFromInt(1000),
				RemainingWeight: decimal.RequireFromString(tt.remaining),
			}
			assert.Equal(t, tt.want, roll.Status())
		})
	}
}

func TestLabel(t *testing.T) {
	roll := FilamentRoll{
		Brand:           "Grilon3",
		MaterialType:    "PLA",
		Color:           "Rojo",
		RemainingWeight: decimal.NewFromFloat(750.4),
	}

	assert.Equal(t, "Grilon3 PLA - Rojo (750g disp.)", roll.Label())
}
