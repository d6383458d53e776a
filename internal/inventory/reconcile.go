package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/ledger"
	"github.com/lucasfauno/printdesk/internal/model"
)

// Reconciler applies stock deductions to the remote ledger and keeps the
// local cache in step afterwards.
//
// Consume is a read-modify-write against shared remote state with no lock or
// transaction: two operators racing between the read and the write lose one
// update. Accepted for the expected single-or-few-operator usage; if that
// ever changes, add a version column checked on write rather than changing
// these semantics silently.
type Reconciler struct {
	client ledger.Client
	cache  *Cache
	logger *slog.Logger
}

// NewReconciler creates a reconciler over the given ledger client and cache.
func NewReconciler(client ledger.Client, cache *Cache, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// ConsumeResult reports the outcome of a stock deduction.
type ConsumeResult struct {
	// NewRemaining is the weight written back, in whole grams.
	NewRemaining decimal.Decimal
	// WentNegative flags an oversold roll. The deduction is applied anyway;
	// refusing on insufficient stock is a front-end decision, never taken
	// here.
	WentNegative bool
	// CacheStale is set when the write succeeded but the cache refresh did
	// not. The ledger is correct; local reads lag until the next refresh.
	CacheStale bool
}

// Consume deducts grams from the roll's remaining weight. The authoritative
// value is re-read from the ledger, not taken from the cache, to narrow the
// window for lost updates against a second operator.
//
// If the write fails, no deduction happened. If only the refresh fails, the
// deduction stands and the result marks the cache stale.
func (r *Reconciler) Consume(ctx context.Context, rollID string, grams decimal.Decimal) (ConsumeResult, error) {
	row, err := r.client.FindRowByID(ctx, rollID)
	if err != nil {
		return ConsumeResult{}, fmt.Errorf("locating roll %s: %w", rollID, err)
	}

	raw, err := r.client.ReadCell(ctx, row, ledger.ColRemainingWeight)
	if err != nil {
		return ConsumeResult{}, fmt.Errorf("reading remaining weight of roll %s: %w", rollID, err)
	}

	// An empty cell counts as zero, but a non-empty cell that does not parse
	// means the sheet holds something unexpected; overwriting it would destroy
	// whatever an operator put there.
	remaining := decimal.Zero
	if raw != "" {
		parsed, parseErr := model.ParseAmount(raw)
		if parseErr != nil {
			return ConsumeResult{}, fmt.Errorf("%w: remaining weight of roll %s reads %q",
				common.ErrLedgerInconsistent, rollID, raw)
		}
		remaining = parsed
	}

	// No floor at zero: a negative remainder means oversold, which the
	// caller surfaces as a warning rather than a refusal.
	newRemaining := remaining.Sub(grams).Truncate(0)

	if err := r.client.WriteCell(ctx, row, ledger.ColRemainingWeight, newRemaining.IntPart()); err != nil {
		return ConsumeResult{}, fmt.Errorf("writing remaining weight of roll %s: %w", rollID, err)
	}

	result := ConsumeResult{
		NewRemaining: newRemaining,
		WentNegative: newRemaining.IsNegative(),
	}

	r.logger.Info("stock deducted",
		"roll_id", rollID,
		"grams", grams.Round(0),
		"remaining", newRemaining)

	if _, err := r.cache.Refresh(ctx); err != nil {
		// The write stands; the cache is merely stale, not wrong.
		r.logger.Warn("inventory refresh failed after deduction", "roll_id", rollID, "error", err)
		result.CacheStale = true
	}

	return result, nil
}
