// Package ledger abstracts the remote spreadsheet that stores the sales
// history and the filament roll registry. The core consumes the Client
// interface; the production implementation talks to Google Sheets and tests
// substitute an in-memory fake.
package ledger

import "context"

// Roll sheet column positions, 1-based. The sheet schema is fixed and
// positional: ID, Fecha, Marca, Tipo, Color, Acabado, Peso_Inicial,
// Peso_Actual, Precio_Rollo. Any schema change must update these offsets in
// lockstep with the sheet itself.
const (
	ColRollID          = 1
	ColRollDate        = 2
	ColRollBrand       = 3
	ColRollType        = 4
	ColRollColor       = 5
	ColRollFinish      = 6
	ColInitialWeight   = 7
	ColRemainingWeight = 8
	ColSpoolPrice      = 9

	// RollColumnCount is the width of one inventory row.
	RollColumnCount = 9

	// HistoryColumnCount is the width of one history row.
	HistoryColumnCount = 13
)

// Client is the set of row-oriented operations the core needs from the
// remote ledger. Every call is a blocking round-trip and can fail with
// common.ErrLedgerUnavailable (network/auth) or common.ErrLedgerInconsistent
// (unexpected response shape). Nothing here retries.
type Client interface {
	// ListRolls returns the inventory sheet as header-keyed records,
	// one per data row, in sheet order.
	ListRolls(ctx context.Context) ([]map[string]string, error)

	// AppendRoll appends one full roll row to the inventory sheet.
	AppendRoll(ctx context.Context, fields []any) error

	// FindRowByID locates the 1-based physical row whose ID column equals
	// the given id's string form. Returns common.ErrRollNotFound when absent.
	FindRowByID(ctx context.Context, id string) (int64, error)

	// ReadCell reads a single inventory cell by 1-based row and column.
	ReadCell(ctx context.Context, row, col int64) (string, error)

	// WriteCell overwrites a single inventory cell.
	WriteCell(ctx context.Context, row, col int64, value any) error

	// AppendHistory appends one full history row.
	AppendHistory(ctx context.Context, fields []any) error

	// ListHistory returns the history sheet verbatim; the first row is the
	// header and the caller strips it.
	ListHistory(ctx context.Context) ([][]string, error)

	// DeleteHistoryRow deletes the given 1-based physical history row.
	DeleteHistoryRow(ctx context.Context, row int64) error
}
