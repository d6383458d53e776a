package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lucasfauno/printdesk/internal/cli"
	"github.com/lucasfauno/printdesk/internal/config"
)

// The cost settings live in a local file, so these commands never touch the
// ledger and work offline.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the quoting cost parameters",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current cost parameters",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.NewSettingsStore(config.SettingsPath()).Load()

			fmt.Printf("Precio luz (kWh):      $%s\n", cfg.ElectricityPricePerKWh.String())
			fmt.Printf("Consumo impresora:     %s kW\n", cfg.PrinterPowerDrawKW.String())
			fmt.Printf("Margen ganancia:       %s %%\n", cfg.ProfitMarginPercent.String())
			fmt.Printf("Desgaste máquina (/h): $%s\n", cfg.MachineWearCostPerHour.String())
			fmt.Printf("Hora de diseño:        $%s\n", cfg.DesignHourPrice.String())
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	var (
		kwhPrice   float64
		powerDraw  float64
		marginPct  float64
		wearHour   float64
		designHour float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change cost parameters and save the settings file",
		Long: `Changes only the parameters whose flags are given; everything else keeps
its current value. The settings file is rewritten wholesale.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := config.NewSettingsStore(config.SettingsPath())
			cfg := store.Load()

			if cmd.Flags().Changed("kwh-price") {
				cfg.ElectricityPricePerKWh = decimal.NewFromFloat(kwhPrice)
			}
			if cmd.Flags().Changed("power-draw") {
				cfg.PrinterPowerDrawKW = decimal.NewFromFloat(powerDraw)
			}
			if cmd.Flags().Changed("margin") {
				cfg.ProfitMarginPercent = decimal.NewFromFloat(marginPct)
			}
			if cmd.Flags().Changed("wear-hour") {
				cfg.MachineWearCostPerHour = decimal.NewFromFloat(wearHour)
			}
			if cmd.Flags().Changed("design-hour") {
				cfg.DesignHourPrice = decimal.NewFromFloat(designHour)
			}

			if err := store.Save(cfg); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("settings saved"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&kwhPrice, "kwh-price", 0, "electricity price per kWh")
	cmd.Flags().Float64Var(&powerDraw, "power-draw", 0, "printer power draw in kW")
	cmd.Flags().Float64Var(&marginPct, "margin", 0, "profit margin percent")
	cmd.Flags().Float64Var(&wearHour, "wear-hour", 0, "machine wear cost per hour")
	cmd.Flags().Float64Var(&designHour, "design-hour", 0, "design hour price")

	return cmd
}
