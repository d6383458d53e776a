package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lucasfauno/printdesk/internal/cli"
	"github.com/lucasfauno/printdesk/internal/model"
	"github.com/lucasfauno/printdesk/internal/pricing"
)

func quoteCmd() *cobra.Command {
	var (
		clientName   string
		itemName     string
		weightText   string
		hours        int64
		minutes      int64
		quantity     int64
		wastePct     int64
		materialCost float64
		rollID       string
		withDesign   bool
		designHours  int64
		save         bool
		allowNeg     bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a print job quote, optionally saving it",
		Long: `Computes the itemized cost of a print job from the shop's cost settings.
With --save the quote is confirmed: filament is deducted from the selected
roll and the transaction is appended to the history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Input validation happens before any ledger round-trip.
			baseWeight, err := model.ParseAmount(weightText)
			if err != nil {
				return fmt.Errorf("piece weight: %w", err)
			}

			waste := decimal.NewFromInt(wastePct).Div(decimal.NewFromInt(100))
			printHours := decimal.NewFromInt(hours).
				Add(decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)))

			params := pricing.JobParams{
				BaseWeightGrams:   baseWeight,
				WasteFraction:     waste,
				PrintHours:        printHours,
				MaterialCostPerKg: decimal.NewFromFloat(materialCost),
				Quantity:          quantity,
				DesignIncluded:    withDesign,
				DesignHours:       decimal.NewFromInt(designHours),
			}

			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			materialLabel := "Manual"
			if rollID != "" {
				if _, err := b.ForceRefresh(ctx); err != nil {
					return err
				}
				roll, ok := b.LookupRoll(rollID)
				if !ok {
					return fmt.Errorf("roll %s is not in the inventory", rollID)
				}
				params.MaterialCostPerKg = roll.UnitCostPerKg()
				materialLabel = roll.Label()
				fmt.Println(cli.StockAdvisory(roll))
			}

			quote, err := b.ComputeQuote(params)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderQuote(quote))

			if !save {
				return nil
			}
			if clientName == "" {
				return fmt.Errorf("--client is required to save a quote")
			}

			if rollID != "" {
				consumed := pricing.TotalFilamentGrams(baseWeight, waste, quantity)
				roll, _ := b.LookupRoll(rollID)

				if roll.RemainingWeight.LessThan(consumed) && !allowNeg {
					return fmt.Errorf("the batch needs %sg but only %sg remain; re-run with --allow-negative to oversell the roll",
						consumed.Round(0), roll.RemainingWeight.Round(0))
				}

				result, err := b.ConsumeStock(ctx, rollID, consumed)
				switch {
				case err != nil:
					// Match the established behavior: the history entry is
					// still recorded, the operator fixes stock by hand.
					fmt.Println(cli.FormatWarning(fmt.Sprintf("stock deduction failed, fix the ledger manually: %v", err)))
				case result.WentNegative:
					fmt.Println(cli.FormatWarning(fmt.Sprintf("roll oversold, %sg remaining", result.NewRemaining)))
				case result.CacheStale:
					fmt.Println(cli.FormatWarning("deducted, but the local inventory view is stale"))
				}
			}

			if itemName == "" {
				itemName = "Pieza"
			}
			record := b.NewPrintJobRecord(
				clientName,
				itemName,
				materialLabel,
				weightText,
				fmt.Sprintf("%dh %dm", hours, minutes),
				fmt.Sprintf("%d hs", effectiveDesignHours(withDesign, designHours)),
				quote,
			)

			if err := b.RecordTransaction(ctx, record); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("saved to history"))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientName, "client", "", "client name (required with --save)")
	cmd.Flags().StringVar(&itemName, "item", "", "piece or model name")
	cmd.Flags().StringVar(&weightText, "weight", "", "base piece weight in grams (required)")
	cmd.Flags().Int64Var(&hours, "hours", 0, "print time, hours part")
	cmd.Flags().Int64Var(&minutes, "minutes", 0, "print time, minutes part")
	cmd.Flags().Int64Var(&quantity, "qty", 1, "number of pieces")
	cmd.Flags().Int64Var(&wastePct, "waste-pct", 10, "failure/waste margin percent")
	cmd.Flags().Float64Var(&materialCost, "material-cost", 0, "material replacement cost per kg (ignored with --roll)")
	cmd.Flags().StringVar(&rollID, "roll", "", "id of the stock roll to price and deduct from")
	cmd.Flags().BoolVar(&withDesign, "with-design", false, "charge design hours on this batch")
	cmd.Flags().Int64Var(&designHours, "design-hours", 0, "design hours (needs --with-design)")
	cmd.Flags().BoolVar(&save, "save", false, "confirm: deduct stock and append to history")
	cmd.Flags().BoolVar(&allowNeg, "allow-negative", false, "deduct even when the roll lacks enough filament")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

func effectiveDesignHours(withDesign bool, designHours int64) int64 {
	if !withDesign {
		return 0
	}
	return designHours
}
