// Package config provides configuration loading for the application: the
// local cost-settings file and the viper-backed ledger connection settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/model"
)

// settingsFile is the on-disk shape of the local settings blob: a flat
// object with one nested "configuracion" key. The key names are the ones
// the shop's existing file already uses; changing them would orphan it.
type settingsFile struct {
	Configuracion settingsValues `json:"configuracion"`
}

type settingsValues struct {
	ElectricityPricePerKWh float64 `json:"precio_kwh"`
	PrinterPowerDrawKW     float64 `json:"consumo_kw"`
	ProfitMarginPercent    float64 `json:"margen_ganancia"`
	MachineWearCostPerHour float64 `json:"precio_desgaste_hora"`
	DesignHourPrice        float64 `json:"precio_hora_diseno"`
}

// DefaultCostConfig returns the hardcoded fallback cost parameters used when
// no settings file exists or it cannot be read.
func DefaultCostConfig() model.CostConfig {
	return model.CostConfig{
		ElectricityPricePerKWh: decimal.NewFromInt(170),
		PrinterPowerDrawKW:     decimal.NewFromFloat(0.2),
		ProfitMarginPercent:    decimal.NewFromInt(100),
		MachineWearCostPerHour: decimal.NewFromInt(200),
		DesignHourPrice:        decimal.NewFromInt(8500),
	}
}

// SettingsStore loads and saves the cost configuration as a local JSON file.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a store for the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the cost configuration. A missing or unreadable file falls back
// to the defaults; startup never fails on settings.
func (s *SettingsStore) Load() model.CostConfig {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultCostConfig()
	}

	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return DefaultCostConfig()
	}

	return model.CostConfig{
		ElectricityPricePerKWh: decimal.NewFromFloat(file.Configuracion.ElectricityPricePerKWh),
		PrinterPowerDrawKW:     decimal.NewFromFloat(file.Configuracion.PrinterPowerDrawKW),
		ProfitMarginPercent:    decimal.NewFromFloat(file.Configuracion.ProfitMarginPercent),
		MachineWearCostPerHour: decimal.NewFromFloat(file.Configuracion.MachineWearCostPerHour),
		DesignHourPrice:        decimal.NewFromFloat(file.Configuracion.DesignHourPrice),
	}
}

// Save validates and writes the whole configuration. There is no partial
// update; the file is rewritten wholesale.
func (s *SettingsStore) Save(cfg model.CostConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	file := settingsFile{
		Configuracion: settingsValues{
			ElectricityPricePerKWh: cfg.ElectricityPricePerKWh.InexactFloat64(),
			PrinterPowerDrawKW:     cfg.PrinterPowerDrawKW.InexactFloat64(),
			ProfitMarginPercent:    cfg.ProfitMarginPercent.InexactFloat64(),
			MachineWearCostPerHour: cfg.MachineWearCostPerHour.InexactFloat64(),
			DesignHourPrice:        cfg.DesignHourPrice.InexactFloat64(),
		},
	}

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}
