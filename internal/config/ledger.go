package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/lucasfauno/printdesk/internal/ledger"
)

// LoadLedgerConfig loads Google Sheets ledger configuration from Viper and
// environment variables. Precedence:
// 1. Viper configuration (config file or PRINTDESK_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadLedgerConfig() (*ledger.Config, error) {
	config := ledger.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = expandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.history_sheet"); v != "" {
		config.HistorySheet = v
	}
	if v := viper.GetString("sheets.inventory_sheet"); v != "" {
		config.InventorySheet = v
	}
	if v := viper.GetDuration("sheets.request_timeout"); v > 0 {
		config.RequestTimeout = v
	}

	// Fall back to direct environment variables.
	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = expandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SettingsPath returns the location of the local cost-settings file.
func SettingsPath() string {
	if v := viper.GetString("settings_path"); v != "" {
		return expandPath(v)
	}
	return "configuracion.json"
}

// Operator returns the name recorded in the history's operator column.
func Operator() string {
	if v := viper.GetString("operator"); v != "" {
		return v
	}
	return "Usuario"
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}
