// Package inventory keeps a local mirror of the remote roll registry and
// performs stock deductions against it.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/ledger"
	"github.com/lucasfauno/printdesk/internal/model"
)

// minSelectableGrams is the remaining weight below which a roll is treated as
// practically empty and hidden from quoting. Presentation policy, not a
// mutation of the ledger.
const minSelectableGrams = 5

// Cache is the in-memory mirror of the remote inventory sheet. Reads never
// touch the network; only Refresh does, replacing the snapshot atomically so
// a reader can never observe a half-updated collection.
type Cache struct {
	client ledger.Client
	logger *slog.Logger
	rolls  []model.FilamentRoll
	mu     sync.RWMutex
}

// NewCache creates an empty cache backed by the given ledger client.
func NewCache(client ledger.Client, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

// Current returns the last-known snapshot in ledger order. No I/O.
func (c *Cache) Current() []model.FilamentRoll {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]model.FilamentRoll(nil), c.rolls...)
}

// Refresh re-reads the whole inventory from the ledger and swaps the
// snapshot. On failure the previous snapshot stays untouched.
func (c *Cache) Refresh(ctx context.Context) (int, error) {
	records, err := c.client.ListRolls(ctx)
	if err != nil {
		return 0, fmt.Errorf("refreshing inventory: %w", err)
	}

	rolls := make([]model.FilamentRoll, 0, len(records))
	for _, record := range records {
		rolls = append(rolls, model.RollFromRecord(record))
	}

	c.mu.Lock()
	c.rolls = rolls
	c.mu.Unlock()

	c.logger.Debug("inventory refreshed", "rolls", len(rolls))
	return len(rolls), nil
}

// LookupByID returns the cached roll with the given id, if present.
func (c *Cache) LookupByID(id string) (model.FilamentRoll, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, roll := range c.rolls {
		if roll.ID == id {
			return roll, true
		}
	}
	return model.FilamentRoll{}, false
}

// Available returns the rolls offered for selection when quoting: everything
// with at least minSelectableGrams remaining.
func (c *Cache) Available() []model.FilamentRoll {
	c.mu.RLock()
	defer c.mu.RUnlock()

	threshold := decimal.NewFromInt(minSelectableGrams)
	available := make([]model.FilamentRoll, 0, len(c.rolls))
	for _, roll := range c.rolls {
		if roll.RemainingWeight.LessThan(threshold) {
			continue
		}
		available = append(available, roll)
	}
	return available
}
