package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucasfauno/printdesk/internal/backend"
	"github.com/lucasfauno/printdesk/internal/common"
	"github.com/lucasfauno/printdesk/internal/config"
	"github.com/lucasfauno/printdesk/internal/ledger"
)

// newBackend builds a fully wired Backend for one command invocation.
// Each invocation is one session with its own cache; nothing is shared
// between processes except the ledger itself.
func newBackend(ctx context.Context) (*backend.Backend, error) {
	ledgerConfig, err := config.LoadLedgerConfig()
	if err != nil {
		return nil, fmt.Errorf("ledger configuration: %w", err)
	}

	logger := slog.Default()

	client, err := ledger.NewSheetsClient(ctx, *ledgerConfig, logger)
	if err != nil {
		return nil, common.NewUserError("cannot reach the stock ledger; check the sheets credentials", err)
	}

	settings := config.NewSettingsStore(config.SettingsPath())

	return backend.New(client, settings, config.Operator(), logger), nil
}
