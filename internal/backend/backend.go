// Package backend wires the pricing engine, inventory cache, stock
// reconciler and history recorder into the single operation set both front
// ends consume. One Backend instance serves one session; there are no
// process-wide singletons, so tests and future multi-session deployments get
// isolated state for free.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/config"
	"github.com/lucasfauno/printdesk/internal/history"
	"github.com/lucasfauno/printdesk/internal/inventory"
	"github.com/lucasfauno/printdesk/internal/ledger"
	"github.com/lucasfauno/printdesk/internal/model"
	"github.com/lucasfauno/printdesk/internal/pricing"
)

// dateLayout is the dd/mm/yyyy form the ledger's date columns use.
const dateLayout = "02/01/2006"

// Backend is the shared application core behind every user-facing action.
// All operations are synchronous and run to completion; no failure is fatal
// to the process.
type Backend struct {
	ledger     ledger.Client
	cache      *inventory.Cache
	reconciler *inventory.Reconciler
	recorder   *history.Recorder
	settings   *config.SettingsStore
	logger     *slog.Logger
	costConfig model.CostConfig
	operator   string
	now        func() time.Time
}

// New creates a Backend over the given ledger client, loading the cost
// configuration from the settings store (falling back to defaults).
func New(client ledger.Client, settings *config.SettingsStore, operator string, logger *slog.Logger) *Backend {
	cache := inventory.NewCache(client, logger)

	return &Backend{
		ledger:     client,
		cache:      cache,
		reconciler: inventory.NewReconciler(client, cache, logger),
		recorder:   history.NewRecorder(client, logger),
		settings:   settings,
		logger:     logger,
		costConfig: settings.Load(),
		operator:   operator,
		now:        time.Now,
	}
}

// CostConfig returns the current in-memory cost configuration.
func (b *Backend) CostConfig() model.CostConfig {
	return b.costConfig
}

// SaveCostConfig validates, persists and adopts a new cost configuration.
func (b *Backend) SaveCostConfig(cfg model.CostConfig) error {
	if err := b.settings.Save(cfg); err != nil {
		return err
	}
	b.costConfig = cfg
	b.logger.Info("cost configuration saved")
	return nil
}

// ComputeQuote prices a print job with the current cost configuration.
// Pure computation, no side effects.
func (b *Backend) ComputeQuote(params pricing.JobParams) (pricing.Quote, error) {
	return pricing.ComputeQuote(params, b.costConfig)
}

// ComputeDirectSale prices a flat-rate counter sale.
func (b *Backend) ComputeDirectSale(quantity int64, unitPrice decimal.Decimal) (pricing.Quote, error) {
	return pricing.DirectSale(quantity, unitPrice)
}

// Inventory returns the cached roll snapshot. No I/O.
func (b *Backend) Inventory() []model.FilamentRoll {
	return b.cache.Current()
}

// ListAvailableRolls returns the cached rolls offered for quoting.
func (b *Backend) ListAvailableRolls() []model.FilamentRoll {
	return b.cache.Available()
}

// LookupRoll finds a cached roll by id.
func (b *Backend) LookupRoll(id string) (model.FilamentRoll, bool) {
	return b.cache.LookupByID(id)
}

// ForceRefresh re-reads the inventory from the ledger.
func (b *Backend) ForceRefresh(ctx context.Context) (int, error) {
	return b.cache.Refresh(ctx)
}

// AddRollParams are the user-entered fields of a new filament roll.
type AddRollParams struct {
	Brand              string
	MaterialType       string
	Color              string
	Matte              bool
	InitialWeightGrams decimal.Decimal
	SpoolPrice         decimal.Decimal
}

// AddRoll registers a new roll: assigns a unique id, appends the full ledger
// row and refreshes the cache. The id derives from the creation instant at
// nanosecond resolution, which makes collisions negligible for a shop-sized
// ledger.
func (b *Backend) AddRoll(ctx context.Context, params AddRollParams) (model.FilamentRoll, error) {
	if params.Color == "" {
		return model.FilamentRoll{}, fmt.Errorf("%w: color is required", common.ErrInvalidInput)
	}
	if !params.InitialWeightGrams.IsPositive() {
		return model.FilamentRoll{}, fmt.Errorf("%w: initial weight must be positive", common.ErrInvalidInput)
	}
	if params.SpoolPrice.IsNegative() {
		return model.FilamentRoll{}, fmt.Errorf("%w: spool price cannot be negative", common.ErrInvalidInput)
	}

	finish := model.FinishStandard
	if params.Matte {
		finish = model.FinishMatte
	}

	createdAt := b.now()
	roll := model.FilamentRoll{
		ID:              strconv.FormatInt(createdAt.UnixNano(), 10),
		CreatedAt:       createdAt.Format(dateLayout),
		Brand:           params.Brand,
		MaterialType:    params.MaterialType,
		Color:           params.Color,
		Finish:          finish,
		InitialWeight:   params.InitialWeightGrams,
		RemainingWeight: params.InitialWeightGrams,
		SpoolPrice:      params.SpoolPrice,
	}

	fields := []any{
		roll.ID,
		roll.CreatedAt,
		roll.Brand,
		roll.MaterialType,
		roll.Color,
		string(roll.Finish),
		roll.InitialWeight.IntPart(),
		roll.RemainingWeight.IntPart(),
		roll.SpoolPrice.IntPart(),
	}

	if err := b.ledger.AppendRoll(ctx, fields); err != nil {
		return model.FilamentRoll{}, fmt.Errorf("adding roll: %w", err)
	}

	b.logger.Info("roll added", "id", roll.ID, "label", roll.Label())

	if _, err := b.cache.Refresh(ctx); err != nil {
		// The roll is on the ledger; the cache just lags.
		b.logger.Warn("inventory refresh failed after adding roll", "error", err)
	}

	return roll, nil
}

// ConsumeStock deducts grams from a roll on the ledger.
func (b *Backend) ConsumeStock(ctx context.Context, rollID string, grams decimal.Decimal) (inventory.ConsumeResult, error) {
	return b.reconciler.Consume(ctx, rollID, grams)
}

// RecordTransaction appends a confirmed quote or direct sale to the history.
func (b *Backend) RecordTransaction(ctx context.Context, record model.TransactionRecord) error {
	return b.recorder.Record(ctx, record)
}

// ListHistory returns the history entries, header stripped.
func (b *Backend) ListHistory(ctx context.Context) ([][]string, error) {
	return b.recorder.List(ctx)
}

// DeleteHistoryEntry removes the entry at the given visual index.
func (b *Backend) DeleteHistoryEntry(ctx context.Context, visualIndex int) error {
	return b.recorder.Delete(ctx, visualIndex)
}

// NewPrintJobRecord builds the history row for a confirmed print-job quote.
func (b *Backend) NewPrintJobRecord(client, itemName, materialLabel, weightText, durationText, designText string, quote pricing.Quote) model.TransactionRecord {
	return model.TransactionRecord{
		Date:          b.now().Format(dateLayout),
		Operator:      b.operator,
		Client:        client,
		ItemName:      itemName,
		Kind:          model.KindPrintJob,
		MaterialLabel: materialLabel,
		Color:         "-",
		WeightGrams:   weightText,
		PrintDuration: durationText,
		Quantity:      quote.Quantity,
		DesignHours:   designText,
		TotalPrice:    quote.BatchTotal,
		UnitPrice:     quote.AverageUnitPrice,
	}
}

// NewDirectSaleRecord builds the history row for a flat-rate counter sale.
func (b *Backend) NewDirectSaleRecord(client, itemName string, quote pricing.Quote) model.TransactionRecord {
	return model.TransactionRecord{
		Date:          b.now().Format(dateLayout),
		Operator:      b.operator,
		Client:        client,
		ItemName:      itemName,
		Kind:          model.KindDirectSale,
		MaterialLabel: "-",
		Color:         "-",
		WeightGrams:   "0",
		PrintDuration: "N/A",
		Quantity:      quote.Quantity,
		DesignHours:   "-",
		TotalPrice:    quote.BatchTotal,
		UnitPrice:     quote.UnitSalePrice,
	}
}
