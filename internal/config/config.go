package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/odonto-flow/internal/common"
)

// DefaultAPIBaseURL is the hosted clinic backend.
const DefaultAPIBaseURL = "https://solid-dela-arthurgranito-4d00153f.koyeb.app"

// Settings are the resolved runtime options.
type Settings struct {
	APIBaseURL   string
	DatabasePath string
	Theme        string
	APITimeout   time.Duration
	PageSize     int
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("database.path", filepath.Join(Dir(), "odonto.db"))
	v.SetDefault("pagination.page_size", 10)
	v.SetDefault("tui.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("sheets.token_file", filepath.Join(Dir(), "google-token.json"))
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(ExpandPath(p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		APIBaseURL:   v.GetString("api.base_url"),
		APITimeout:   v.GetDuration("api.timeout"),
		DatabasePath: ExpandPath(v.GetString("database.path")),
		PageSize:     v.GetInt("pagination.page_size"),
		Theme:        v.GetString("tui.theme"),
	}

	if s.APIBaseURL == "" {
		return s, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(s.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return s, fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, s.APIBaseURL)
	}
	if s.APITimeout <= 0 {
		return s, fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if s.DatabasePath == "" {
		return s, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if s.PageSize <= 0 {
		return s, fmt.Errorf("%w: pagination.page_size must be positive", common.ErrInvalidConfig)
	}

	return s, nil
}
