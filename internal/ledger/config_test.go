package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validOAuthConfig() Config {
	cfg := DefaultConfig()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.RefreshToken = "refresh-token"
	cfg.SpreadsheetID = "spreadsheet-id"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid oauth",
			mutate: func(_ *Config) {},
		},
		{
			name: "valid service account",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
				c.ServiceAccountPath = "/path/to/key.json"
			},
		},
		{
			name: "no auth method",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.RefreshToken = ""
			},
			wantErr: "no authentication method",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "incomplete oauth counts as no auth",
			mutate: func(c *Config) {
				c.RefreshToken = ""
			},
			wantErr: "no authentication method",
		},
		{
			name: "missing spreadsheet id",
			mutate: func(c *Config) {
				c.SpreadsheetID = ""
			},
			wantErr: "spreadsheet id is required",
		},
		{
			name: "missing sheet names",
			mutate: func(c *Config) {
				c.InventorySheet = ""
			},
			wantErr: "sheet names are required",
		},
		{
			name: "non-positive timeout",
			mutate: func(c *Config) {
				c.RequestTimeout = 0
			},
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOAuthConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Historial", cfg.HistorySheet)
	assert.Equal(t, "Inventario", cfg.InventorySheet)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
