package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Finish describes the surface finish of a filament roll.
type Finish string

const (
	// FinishStandard is a regular filament surface.
	FinishStandard Finish = "Normal"
	// FinishMatte covers matte and silk filaments.
	FinishMatte Finish = "Matte"
)

// StockStatus classifies how much of a roll is left.
type StockStatus string

const (
	// StockFull means more than half of the roll remains.
	StockFull StockStatus = "full"
	// StockMedium means between 20% and 50% remains.
	StockMedium StockStatus = "medium"
	// StockLow means less than 20% remains but the roll is not empty.
	StockLow StockStatus = "low"
	// StockEmpty means nothing usable remains.
	StockEmpty StockStatus = "empty"
)

// FilamentRoll mirrors one row of the remote inventory ledger. The ledger
// owns the data; this is a decoded, typed snapshot of it.
type FilamentRoll struct {
	ID              string
	CreatedAt       string // dd/mm/yyyy, as stored in the ledger
	Brand           string
	MaterialType    string
	Color           string
	Finish          Finish
	InitialWeight   decimal.Decimal // grams
	RemainingWeight decimal.Decimal // grams; may be negative (oversold)
	SpoolPrice      decimal.Decimal
}

// UnitCostPerKg derives the material replacement cost from the spool price.
// A roll with no recorded initial weight costs nothing rather than dividing
// by zero.
func (r FilamentRoll) UnitCostPerKg() decimal.Decimal {
	if !r.InitialWeight.IsPositive() {
		return decimal.Zero
	}
	return r.SpoolPrice.Div(r.InitialWeight).Mul(decimal.NewFromInt(1000))
}

// Status classifies the roll by its remaining-to-initial ratio.
func (r FilamentRoll) Status() StockStatus {
	if !r.RemainingWeight.IsPositive() {
		return StockEmpty
	}

	ratio := decimal.Zero
	if r.InitialWeight.IsPositive() {
		ratio = r.RemainingWeight.Div(r.InitialWeight)
	}

	switch {
	case ratio.LessThan(decimal.NewFromFloat(0.2)):
		return StockLow
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.5)):
		return StockMedium
	default:
		return StockFull
	}
}

// Label renders the roll the way selection pickers display it.
func (r FilamentRoll) Label() string {
	return fmt.Sprintf("%s %s - %s (%sg disp.)",
		r.Brand, r.MaterialType, r.Color, r.RemainingWeight.Round(0))
}

// RollFromRecord decodes a ledger row record into a typed FilamentRoll.
// The remote source is loosely typed: header keys arrive capitalized or
// lowercase depending on who last edited the sheet, and numeric cells may be
// strings with comma decimal separators. All leniency lives here so the rest
// of the code sees only typed values.
func RollFromRecord(record map[string]string) FilamentRoll {
	initial := parseAmountOr(pick(record, "Peso_Inicial", "peso_inicial"), decimal.NewFromInt(1000))

	return FilamentRoll{
		ID:              pick(record, "ID", "id"),
		CreatedAt:       pick(record, "Fecha", "fecha"),
		Brand:           pickOr(record, "Gen", "Marca", "marca"),
		MaterialType:    pickOr(record, "MAT", "Tipo", "tipo"),
		Color:           pick(record, "Color", "color"),
		Finish:          finishFromString(pick(record, "Acabado", "acabado")),
		InitialWeight:   initial,
		RemainingWeight: parseAmountOr(pick(record, "Peso_Actual", "peso_actual"), initial),
		SpoolPrice:      parseAmountOr(pick(record, "Precio_Rollo", "precio_rollo"), decimal.Zero),
	}
}

func finishFromString(raw string) Finish {
	if raw == string(FinishMatte) {
		return FinishMatte
	}
	return FinishStandard
}

// pick returns the first non-empty value among the given keys.
func pick(record map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := record[key]; v != "" {
			return v
		}
	}
	return ""
}

func pickOr(record map[string]string, fallback string, keys ...string) string {
	if v := pick(record, keys...); v != "" {
		return v
	}
	return fallback
}
