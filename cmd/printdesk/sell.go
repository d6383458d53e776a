package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lucasfauno/printdesk/internal/cli"
)

func sellCmd() *cobra.Command {
	var (
		clientName string
		product    string
		quantity   int64
		unitPrice  float64
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Record a flat-rate counter sale (stock or resale goods)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			quote, err := b.ComputeDirectSale(quantity, decimal.NewFromFloat(unitPrice))
			if err != nil {
				return err
			}

			fmt.Printf("Total: %d x $%s = $%s\n",
				quote.Quantity, quote.UnitSalePrice.StringFixed(2), quote.BatchTotal.StringFixed(2))

			if !save {
				return nil
			}
			if clientName == "" {
				return fmt.Errorf("--client is required to save a sale")
			}

			if product == "" {
				product = "Varios"
			}
			record := b.NewDirectSaleRecord(clientName, product, quote)
			if err := b.RecordTransaction(ctx, record); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("sale recorded"))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientName, "client", "", "client name (required with --save)")
	cmd.Flags().StringVar(&product, "product", "", "what was sold")
	cmd.Flags().Int64Var(&quantity, "qty", 1, "number of units")
	cmd.Flags().Float64Var(&unitPrice, "unit-price", 0, "price per unit")
	cmd.Flags().BoolVar(&save, "save", false, "append the sale to the history")

	return cmd
}
