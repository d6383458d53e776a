package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/model"
	"github.com/lucasfauno/printdesk/internal/pricing"
)

// lowStockGrams is the advisory threshold below which a selected roll gets a
// "running out" warning next to its label.
const lowStockGrams = 100

// RenderQuote lays out the itemized quote the way the desktop app's result
// box did: per-unit detail, then batch totals.
func RenderQuote(quote pricing.Quote) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Detalle unitario"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Material:   $%s (%sg con fallo)\n",
		quote.MaterialCost.StringFixed(2), quote.EffectiveWeightGrams.Round(0))
	fmt.Fprintf(&b, "  Luz:        $%s\n", quote.ElectricityCost.StringFixed(2))
	fmt.Fprintf(&b, "  Máquina:    $%s\n", quote.WearCost.StringFixed(2))
	fmt.Fprintf(&b, "  Costo puro: $%s\n", quote.DirectCost.StringFixed(2))
	fmt.Fprintf(&b, "  Ganancia:   $%s\n", quote.Profit.StringFixed(2))
	b.WriteString(SubtleStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Lote x%d\n", quote.Quantity)
	fmt.Fprintf(&b, "  Piezas:  $%s\n", quote.UnitSalePrice.Mul(intDecimal(quote.Quantity)).StringFixed(2))
	fmt.Fprintf(&b, "  Diseño:  $%s\n", quote.DesignCost.StringFixed(2))
	fmt.Fprintf(&b, "TOTAL: $%s (unitario $%s)",
		quote.BatchTotal.StringFixed(2), quote.AverageUnitPrice.StringFixed(2))

	return BoxStyle.Render(b.String())
}

// RenderRollTable lays out the inventory with the stock-status badge column.
func RenderRollTable(rolls []model.FilamentRoll) string {
	if len(rolls) == 0 {
		return SubtleStyle.Render("(inventario vacío)")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-20s %-10s %-10s %-16s %-16s %s",
		"ID", "Marca", "Material", "Color", "Peso restante", "Estado")))
	b.WriteString("\n")

	for _, roll := range rolls {
		weight := fmt.Sprintf("%sg / %sg", roll.RemainingWeight.Round(0), roll.InitialWeight.Round(0))
		fmt.Fprintf(&b, "%-20s %-10s %-10s %-16s %-16s %s\n",
			roll.ID, roll.Brand, roll.MaterialType, roll.Color, weight, statusBadge(roll.Status()))
	}

	return b.String()
}

// RenderHistoryTable lays out raw history rows with their visual index, the
// same index history delete takes.
func RenderHistoryTable(rows [][]string) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("(historial vacío)")
	}

	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "%s %s\n",
			SubtleStyle.Render(fmt.Sprintf("[%3d]", i)),
			strings.Join(row, " | "))
	}
	return b.String()
}

// StockAdvisory describes the selected roll's availability for the operator.
func StockAdvisory(roll model.FilamentRoll) string {
	if roll.RemainingWeight.LessThan(intDecimal(lowStockGrams)) {
		return FormatWarning(fmt.Sprintf("QUEDA MUY POCO: %sg", roll.RemainingWeight.Round(0)))
	}
	return FormatSuccess(fmt.Sprintf("Stock OK: %sg disponibles", roll.RemainingWeight.Round(0)))
}

func intDecimal(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func statusBadge(status model.StockStatus) string {
	switch status {
	case model.StockFull:
		return SuccessStyle.Render("Lleno")
	case model.StockMedium:
		return WarningStyle.Render("Medio")
	case model.StockLow:
		return ErrorStyle.Render("Poco")
	default:
		return SubtleStyle.Render("Vacío")
	}
}
