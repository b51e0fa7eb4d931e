// Package service defines the interfaces shared by the dashboard's layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// ConsultaFetcher lists every consultation visible to the authenticated user.
type ConsultaFetcher interface {
	ListConsultas(ctx context.Context) ([]model.Consulta, error)
}

// SlotFetcher lists open agenda slots.
type SlotFetcher interface {
	ListAvailableSlots(ctx context.Context) ([]model.Slot, error)
}

// AgendaManager releases and withdraws slots for a date range.
type AgendaManager interface {
	GenerateAgenda(ctx context.Context, r model.AgendaRange) error
	DeleteAgenda(ctx context.Context, r model.AgendaRange) error
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// DashboardAPI is everything the dashboard needs from the backend.
type DashboardAPI interface {
	ConsultaFetcher
	SlotFetcher
	AgendaManager
	Authenticator
}

// TokenStore defines the contract for persisting the auth token.
// It is the only state the dashboard keeps between runs.
type TokenStore interface {
	GetToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter exports a consultation listing as a spreadsheet.
type ReportWriter interface {
	Write(ctx context.Context, title string, consultas []model.Consulta, includeFinancial bool) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
