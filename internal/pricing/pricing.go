// Package pricing computes itemized quotes for print jobs. It is pure: no
// I/O, no state, deterministic for a given input.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/model"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// JobParams are the user-entered parameters of a print job quote.
type JobParams struct {
	BaseWeightGrams   decimal.Decimal
	WasteFraction     decimal.Decimal // e.g. 0.1 for a 10% failure margin
	PrintHours        decimal.Decimal
	MaterialCostPerKg decimal.Decimal
	Quantity          int64
	DesignIncluded    bool
	DesignHours       decimal.Decimal // ignored unless DesignIncluded
}

// Quote is the itemized result of a cost computation. All values keep full
// precision; rounding happens only when a value is displayed.
type Quote struct {
	EffectiveWeightGrams decimal.Decimal // per unit, waste margin included
	MaterialCost         decimal.Decimal // per unit
	ElectricityCost      decimal.Decimal // per unit
	WearCost             decimal.Decimal // per unit
	DirectCost           decimal.Decimal // per unit, before profit
	Profit               decimal.Decimal // per unit
	UnitSalePrice        decimal.Decimal
	DesignCost           decimal.Decimal // once per batch
	BatchTotal           decimal.Decimal
	AverageUnitPrice     decimal.Decimal
	Quantity             int64
}

// ComputeQuote maps job parameters and the cost configuration to an itemized
// quote. The operation order is fixed; changing it changes totals through
// intermediate precision and breaks parity with the recorded history.
func ComputeQuote(params JobParams, cfg model.CostConfig) (Quote, error) {
	if params.Quantity <= 0 {
		return Quote{}, fmt.Errorf("%w: quantity must be at least 1", common.ErrInvalidInput)
	}
	if params.BaseWeightGrams.IsNegative() {
		return Quote{}, fmt.Errorf("%w: piece weight cannot be negative", common.ErrInvalidInput)
	}

	designHours := decimal.Zero
	if params.DesignIncluded {
		designHours = params.DesignHours
	}

	quantity := decimal.NewFromInt(params.Quantity)

	effectiveWeight := params.BaseWeightGrams.Mul(decimal.NewFromInt(1).Add(params.WasteFraction))
	materialCost := effectiveWeight.Div(thousand).Mul(params.MaterialCostPerKg)
	electricityCost := params.PrintHours.Mul(cfg.PrinterPowerDrawKW).Mul(cfg.ElectricityPricePerKWh)
	wearCost := params.PrintHours.Mul(cfg.MachineWearCostPerHour)
	directCost := materialCost.Add(electricityCost).Add(wearCost)
	profit := directCost.Mul(cfg.ProfitMarginPercent.Div(hundred))
	unitSalePrice := directCost.Add(profit)
	designCost := designHours.Mul(cfg.DesignHourPrice)
	batchTotal := unitSalePrice.Mul(quantity).Add(designCost)
	averageUnitPrice := batchTotal.Div(quantity)

	return Quote{
		EffectiveWeightGrams: effectiveWeight,
		MaterialCost:         materialCost,
		ElectricityCost:      electricityCost,
		WearCost:             wearCost,
		DirectCost:           directCost,
		Profit:               profit,
		UnitSalePrice:        unitSalePrice,
		DesignCost:           designCost,
		BatchTotal:           batchTotal,
		AverageUnitPrice:     averageUnitPrice,
		Quantity:             params.Quantity,
	}, nil
}

// DirectSale is the flat-rate variant used for counter sales of stock or
// resale goods: quantity times unit price, with every print-specific term
// (material, electricity, wear, design) zero. The result is a Quote so
// downstream recording code handles both kinds of transaction uniformly.
func DirectSale(quantity int64, unitPrice decimal.Decimal) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, fmt.Errorf("%w: quantity must be at least 1", common.ErrInvalidInput)
	}
	if unitPrice.IsNegative() {
		return Quote{}, fmt.Errorf("%w: unit price cannot be negative", common.ErrInvalidInput)
	}

	total := unitPrice.Mul(decimal.NewFromInt(quantity))

	return Quote{
		UnitSalePrice:    unitPrice,
		BatchTotal:       total,
		AverageUnitPrice: unitPrice,
		Quantity:         quantity,
	}, nil
}

// TotalFilamentGrams is the material a confirmed batch consumes from a roll:
// the base piece weight for every unit, plus the waste margin.
func TotalFilamentGrams(baseWeightGrams, wasteFraction decimal.Decimal, quantity int64) decimal.Decimal {
	return baseWeightGrams.Mul(decimal.NewFromInt(quantity)).
		Mul(decimal.NewFromInt(1).Add(wasteFraction))
}
