package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/odonto-flow/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration with this precedence:
// 1. Viper configuration (config file or ODONTO_SHEETS_* env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	pick := func(key, env string) string {
		if val := v.GetString(key); val != "" {
			return val
		}
		return os.Getenv(env)
	}

	cfg.ServiceAccountPath = ExpandPath(pick("sheets.service_account_path", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	cfg.ClientID = pick("sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID")
	cfg.ClientSecret = pick("sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET")
	cfg.RefreshToken = pick("sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN")
	cfg.SpreadsheetID = pick("sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID")
	if name := pick("sheets.spreadsheet_name", "GOOGLE_SHEETS_SPREADSHEET_NAME"); name != "" {
		cfg.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.time_zone"); tz != "" {
		cfg.TimeZone = tz
	}

	// A refresh token saved by "odonto auth google" fills in for a missing one.
	if cfg.RefreshToken == "" && cfg.ClientID != "" {
		if tokenFile := ExpandPath(v.GetString("sheets.token_file")); tokenFile != "" {
			if token, err := sheets.LoadToken(tokenFile); err == nil {
				cfg.RefreshToken = token.RefreshToken
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOAuth2Config returns the settings for the interactive Google consent flow.
func LoadOAuth2Config(v *viper.Viper) sheets.OAuth2Config {
	id := v.GetString("sheets.client_id")
	if id == "" {
		id = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	secret := v.GetString("sheets.client_secret")
	if secret == "" {
		secret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	return sheets.OAuth2Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenFile:    ExpandPath(v.GetString("sheets.token_file")),
	}
}
