package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lucasfauno/printdesk/internal/backend"
	"github.com/lucasfauno/printdesk/internal/cli"
	"github.com/lucasfauno/printdesk/internal/model"
)

func stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage the filament roll inventory",
	}

	cmd.AddCommand(stockListCmd())
	cmd.AddCommand(stockAddCmd())
	cmd.AddCommand(stockRefreshCmd())
	cmd.AddCommand(stockConsumeCmd())

	return cmd
}

func stockListCmd() *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the rolls on the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			if _, err := b.ForceRefresh(ctx); err != nil {
				return err
			}

			rolls := b.Inventory()
			if availableOnly {
				rolls = b.ListAvailableRolls()
			}

			fmt.Println(cli.RenderRollTable(rolls))
			return nil
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available", false, "only rolls selectable for quoting")

	return cmd
}

func stockAddCmd() *cobra.Command {
	var (
		brand        string
		materialType string
		color        string
		matte        bool
		weight       int64
		price        float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new filament roll",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			roll, err := b.AddRoll(ctx, backend.AddRollParams{
				Brand:              brand,
				MaterialType:       materialType,
				Color:              color,
				Matte:              matte,
				InitialWeightGrams: decimal.NewFromInt(weight),
				SpoolPrice:         decimal.NewFromFloat(price),
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("roll added: %s (id %s)", roll.Label(), roll.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "Generic", "filament brand")
	cmd.Flags().StringVar(&materialType, "type", "PLA", "material type (PLA, PETG, ABS, TPU...)")
	cmd.Flags().StringVar(&color, "color", "", "filament color (required)")
	cmd.Flags().BoolVar(&matte, "matte", false, "matte or silk finish")
	cmd.Flags().Int64Var(&weight, "weight", 1000, "initial weight in grams")
	cmd.Flags().Float64Var(&price, "price", 0, "spool price")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func stockRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-read the inventory from the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			count, err := b.ForceRefresh(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("inventory refreshed: %d rolls", count)))
			return nil
		},
	}
}

func stockConsumeCmd() *cobra.Command {
	var (
		rollID   string
		grams    string
		allowNeg bool
	)

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Deduct grams from a roll's remaining weight",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := model.ParseAmount(grams)
			if err != nil {
				return fmt.Errorf("grams: %w", err)
			}

			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			if !allowNeg {
				if _, err := b.ForceRefresh(ctx); err != nil {
					return err
				}
				if roll, ok := b.LookupRoll(rollID); ok && roll.RemainingWeight.LessThan(amount) {
					return fmt.Errorf("only %sg remain; re-run with --allow-negative to oversell the roll",
						roll.RemainingWeight.Round(0))
				}
			}

			result, err := b.ConsumeStock(ctx, rollID, amount)
			if err != nil {
				return err
			}

			switch {
			case result.WentNegative:
				fmt.Println(cli.FormatWarning(fmt.Sprintf("roll oversold, %sg remaining", result.NewRemaining)))
			case result.CacheStale:
				fmt.Println(cli.FormatWarning("deducted, but the local inventory view is stale"))
			default:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%sg remaining", result.NewRemaining)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rollID, "roll", "", "roll id (required)")
	cmd.Flags().StringVar(&grams, "grams", "", "grams to deduct (required)")
	cmd.Flags().BoolVar(&allowNeg, "allow-negative", false, "deduct even when the roll lacks enough filament")
	_ = cmd.MarkFlagRequired("roll")
	_ = cmd.MarkFlagRequired("grams")

	return cmd
}
