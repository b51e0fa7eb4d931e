package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/sheets"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSheetsConfig_ViperWinsOverEnv(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

	v := newViper()
	v.Set("sheets.service_account_path", "/keys/sa.json")
	v.Set("sheets.spreadsheet_id", "from-viper")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "from-viper", cfg.SpreadsheetID)
	assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_EnvFallback(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Clínica")

	cfg, err := LoadSheetsConfig(newViper())
	require.NoError(t, err)
	assert.True(t, cfg.HasOAuth())
	assert.Equal(t, "Clínica", cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_TokenFileFillsRefreshToken(t *testing.T) {
	clearSheetsEnv(t)
	tokenFile := filepath.Join(t.TempDir(), "google-token.json")
	require.NoError(t, sheets.SaveToken(tokenFile, &oauth2.Token{RefreshToken: "saved-refresh"}))

	v := newViper()
	v.Set("sheets.client_id", "id")
	v.Set("sheets.client_secret", "secret")
	v.Set("sheets.token_file", tokenFile)

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "saved-refresh", cfg.RefreshToken)

	oauthCfg := LoadOAuth2Config(v)
	assert.Equal(t, tokenFile, oauthCfg.TokenFile)
	assert.Equal(t, "id", oauthCfg.ClientID)
}

func TestLoadSheetsConfig_Unconfigured(t *testing.T) {
	clearSheetsEnv(t)
	_, err := LoadSheetsConfig(newViper())
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
