// Package history appends and lists the ledger's transaction log.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/ledger"
	"github.com/lucasfauno/printdesk/internal/model"
)

// physicalRowOffset converts a visual row index (0-based, as displayed after
// stripping the header) to the sheet's physical row number: +1 for 1-based
// addressing, +1 for the header row.
const physicalRowOffset = 2

// Recorder owns the append-only transaction history.
type Recorder struct {
	client ledger.Client
	logger *slog.Logger
}

// NewRecorder creates a recorder over the given ledger client.
func NewRecorder(client ledger.Client, logger *slog.Logger) *Recorder {
	return &Recorder{
		client: client,
		logger: logger,
	}
}

// Record appends one transaction row. Failures come back from the ledger
// as-is; there is no retry.
func (r *Recorder) Record(ctx context.Context, record model.TransactionRecord) error {
	row := record.Row()
	if len(row) != ledger.HistoryColumnCount {
		return fmt.Errorf("%w: history row has %d fields, want %d",
			common.ErrLedgerInconsistent, len(row), ledger.HistoryColumnCount)
	}

	if err := r.client.AppendHistory(ctx, row); err != nil {
		return fmt.Errorf("recording transaction: %w", err)
	}

	r.logger.Info("transaction recorded",
		"client", record.Client,
		"kind", record.Kind,
		"total", record.TotalPrice.StringFixed(2))
	return nil
}

// List returns the history entries in append (chronological) order, with
// the header row stripped.
func (r *Recorder) List(ctx context.Context) ([][]string, error) {
	rows, err := r.client.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// Delete removes the entry at the given visual index (0-based, header
// stripped), translating to the ledger's physical row before deleting.
func (r *Recorder) Delete(ctx context.Context, visualIndex int) error {
	if visualIndex < 0 {
		return fmt.Errorf("%w: visual index %d", common.ErrInvalidInput, visualIndex)
	}

	physicalRow := int64(visualIndex) + physicalRowOffset
	if err := r.client.DeleteHistoryRow(ctx, physicalRow); err != nil {
		return fmt.Errorf("deleting history entry %d: %w", visualIndex, err)
	}

	r.logger.Info("history entry deleted", "visual_index", visualIndex, "physical_row", physicalRow)
	return nil
}
