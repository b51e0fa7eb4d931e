package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/odonto-flow/internal/pipeline"
	"github.com/Veraticus/odonto-flow/internal/service"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
)

// Source is the backend data the dashboard reads.
type Source interface {
	service.ConsultaFetcher
	service.SlotFetcher
}

// ExporterFunc returns the writer for an export whose file or tab is named
// after prefix.
type ExporterFunc func(prefix string) (service.ReportWriter, error)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Context     context.Context
	Source      Source
	Exporter    ExporterFunc
	Logger      *slog.Logger
	Now         func() time.Time
	LoadTimeout time.Duration
	StatusTTL   time.Duration
	Width       int
	Height      int
	PageSize    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Context:     context.Background(),
		Logger:      slog.Default(),
		Now:         time.Now,
		LoadTimeout: 30 * time.Second,
		StatusTTL:   5 * time.Second,
		Width:       80,
		Height:      24,
		PageSize:    pipeline.DefaultPageSize,
	}
}

// WithSource sets the backend the dashboard loads from.
func WithSource(source Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithExporter enables the export key.
func WithExporter(fn ExporterFunc) Option {
	return func(c *Config) {
		c.Exporter = fn
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPageSize sets the rows per page.
func WithPageSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.PageSize = size
		}
	}
}

// WithClock overrides the current time, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithLoadTimeout bounds each refresh.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.LoadTimeout = d
		}
	}
}
