package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lucasfauno/printdesk/internal/common"
)

// ParseAmount parses a user- or ledger-supplied numeric string into a decimal.
// Comma decimal separators are accepted because the remote ledger stores
// values formatted under a Spanish locale.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty numeric field", common.ErrInvalidInput)
	}

	normalized := strings.ReplaceAll(trimmed, ",", ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cannot parse %q as a number", common.ErrInvalidInput, raw)
	}

	return value, nil
}

// parseAmountOr parses a ledger cell leniently, substituting a fallback when
// the cell is empty or unparseable. Per-field leniency keeps a single bad
// cell from failing a whole inventory refresh.
func parseAmountOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	value, err := ParseAmount(raw)
	if err != nil {
		return fallback
	}
	return value
}
