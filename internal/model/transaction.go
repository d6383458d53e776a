package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes print jobs from counter sales in the history.
type TransactionKind string

const (
	// KindPrintJob is a quoted 3D print job.
	KindPrintJob TransactionKind = "Impresión"
	// KindDirectSale is a flat-rate sale of stock or resale goods.
	KindDirectSale TransactionKind = "Venta Directa"
)

// TransactionRecord is one append-only entry of the sales history. Once
// appended it is immutable; the only mutation the system supports is an
// explicit positional delete.
type TransactionRecord struct {
	Date          string // dd/mm/yyyy
	Operator      string
	Client        string
	ItemName      string
	Kind          TransactionKind
	MaterialLabel string
	Color         string
	WeightGrams   string // entered text, kept verbatim
	PrintDuration string
	Quantity      int64
	DesignHours   string
	TotalPrice    decimal.Decimal
	UnitPrice     decimal.Decimal
}

// Row renders the record as the fixed 13-field ledger row: Fecha, Resp,
// Cliente, Modelo, Tipo, Material, Color, Peso, Tiempo, Cant, Diseño, Total,
// Unitario. Prices are formatted here, at the presentation boundary, never
// mid-computation.
func (t TransactionRecord) Row() []any {
	return []any{
		t.Date,
		t.Operator,
		t.Client,
		t.ItemName,
		string(t.Kind),
		t.MaterialLabel,
		t.Color,
		t.WeightGrams,
		t.PrintDuration,
		t.Quantity,
		t.DesignHours,
		fmt.Sprintf("$%s", t.TotalPrice.StringFixed(2)),
		fmt.Sprintf("$%s", t.UnitPrice.StringFixed(2)),
	}
}
