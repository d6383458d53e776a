// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/common"
)

// CostConfig holds the global cost parameters used by every quote.
// It is loaded once at startup and mutated only through an explicit save.
type CostConfig struct {
	ElectricityPricePerKWh decimal.Decimal
	PrinterPowerDrawKW     decimal.Decimal
	ProfitMarginPercent    decimal.Decimal
	MachineWearCostPerHour decimal.Decimal
	DesignHourPrice        decimal.Decimal
}

// Validate checks that every cost parameter is non-negative.
func (c CostConfig) Validate() error {
	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"electricity price per kWh", c.ElectricityPricePerKWh},
		{"printer power draw", c.PrinterPowerDrawKW},
		{"profit margin percent", c.ProfitMarginPercent},
		{"machine wear cost per hour", c.MachineWearCostPerHour},
		{"design hour price", c.DesignHourPrice},
	}

	for _, check := range checks {
		if check.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, check.name)
		}
	}

	return nil
}
