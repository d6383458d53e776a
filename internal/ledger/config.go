package ledger

import (
	"fmt"
	"time"
)

// Config holds the connection settings for the Google Sheets ledger.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	HistorySheet       string
	InventorySheet     string
	RequestTimeout     time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The sheet names
// match the spreadsheet the shop already uses.
func DefaultConfig() Config {
	return Config{
		HistorySheet:   "Historial",
		InventorySheet: "Inventario",
		RequestTimeout: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}

	if c.HistorySheet == "" || c.InventorySheet == "" {
		return fmt.Errorf("history and inventory sheet names are required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}
