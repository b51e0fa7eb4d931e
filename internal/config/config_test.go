package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/odonto-flow/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, s.APIBaseURL)
	assert.Equal(t, 30*time.Second, s.APITimeout)
	assert.Equal(t, 10, s.PageSize)
	assert.Equal(t, "default", s.Theme)
	assert.NotEmpty(t, s.DatabasePath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		sentinel error
		set      map[string]any
		name     string
	}{
		{name: "empty url", set: map[string]any{"api.base_url": ""}, sentinel: common.ErrMissingConfig},
		{name: "non-http url", set: map[string]any{"api.base_url": "ftp://clinic"}, sentinel: common.ErrInvalidConfig},
		{name: "zero timeout", set: map[string]any{"api.timeout": "0s"}, sentinel: common.ErrInvalidConfig},
		{name: "bad page size", set: map[string]any{"pagination.page_size": 0}, sentinel: common.ErrInvalidConfig},
		{name: "empty database", set: map[string]any{"database.path": ""}, sentinel: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ODONTO_TEST_DOTENV=from-file\nODONTO_TEST_KEEP=from-file\n"), 0600))

	t.Setenv("ODONTO_TEST_KEEP", "from-env")
	t.Setenv("ODONTO_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("ODONTO_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("ODONTO_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("ODONTO_TEST_KEEP"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ODONTO_DIR", "/srv/odonto")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data.db"), ExpandPath("~/data.db"))
	assert.Equal(t, "/srv/odonto/data.db", ExpandPath("$ODONTO_DIR/data.db"))
}
