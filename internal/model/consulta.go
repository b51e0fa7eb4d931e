// Package model defines the clinic domain records fetched from the API.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a consultation.
type Status string

// Consultation status constants.
const (
	StatusAgendada  Status = "AGENDADA"
	StatusConcluida Status = "CONCLUIDA"
	StatusCancelada Status = "CANCELADA"
)

// Label returns the Portuguese display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusAgendada:
		return "Agendada"
	case StatusConcluida:
		return "Concluída"
	case StatusCancelada:
		return "Cancelada"
	default:
		return "Desconhecido"
	}
}

// Paciente is the patient a consultation belongs to.
type Paciente struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
	ID       int64  `json:"id"`
}

// TipoConsulta is the consultation category and its default price.
type TipoConsulta struct {
	Preco decimal.NullDecimal `json:"preco"`
	Nome  string              `json:"nome"`
	ID    int64               `json:"id"`
}

// Consulta is one billable, schedulable clinical appointment.
type Consulta struct {
	ValorCobrado     decimal.NullDecimal `json:"valorCobrado"`
	DataConclusao    *Timestamp          `json:"dataConclusao"`
	Paciente         *Paciente           `json:"paciente"`
	TipoConsulta     *TipoConsulta       `json:"tipoConsulta"`
	AgendaDisponivel *Slot               `json:"agendaDisponivel"`
	Status           Status              `json:"status"`
	Observacoes      string              `json:"observacoes,omitempty"`
	ID               int64               `json:"id"`
}

// Amount is the value billed for the consultation: the charged amount, else
// the type's default price, else zero. A zero amount counts as absent.
func (c Consulta) Amount() decimal.Decimal {
	if c.ValorCobrado.Valid && !c.ValorCobrado.Decimal.IsZero() {
		return c.ValorCobrado.Decimal
	}
	if c.TipoConsulta != nil && c.TipoConsulta.Preco.Valid && !c.TipoConsulta.Preco.Decimal.IsZero() {
		return c.TipoConsulta.Preco.Decimal
	}
	return decimal.Zero
}

// ScheduledDate returns the day of the booked slot.
func (c Consulta) ScheduledDate() (Date, bool) {
	if c.AgendaDisponivel == nil || c.AgendaDisponivel.Data.IsZero() {
		return Date{}, false
	}
	return c.AgendaDisponivel.Data, true
}

// CompletedAt returns the completion timestamp if the consultation has one.
func (c Consulta) CompletedAt() (time.Time, bool) {
	if c.DataConclusao == nil || c.DataConclusao.IsZero() {
		return time.Time{}, false
	}
	return c.DataConclusao.Time, true
}

// EffectiveDate is the completion day if present, otherwise the scheduled day.
func (c Consulta) EffectiveDate() (Date, bool) {
	if t, ok := c.CompletedAt(); ok {
		return DateOf(t), true
	}
	return c.ScheduledDate()
}

// EffectiveTime is the sort key for recency. Missing dates yield the zero time.
func (c Consulta) EffectiveTime() time.Time {
	if t, ok := c.CompletedAt(); ok {
		return t
	}
	if d, ok := c.ScheduledDate(); ok {
		return d.Time
	}
	return time.Time{}
}

// PatientName returns the patient's name or "".
func (c Consulta) PatientName() string {
	if c.Paciente == nil {
		return ""
	}
	return c.Paciente.Nome
}

// TypeName returns the consultation type's name or "".
func (c Consulta) TypeName() string {
	if c.TipoConsulta == nil {
		return ""
	}
	return c.TipoConsulta.Nome
}

// StartTime returns the slot start as HH:MM, or "".
func (c Consulta) StartTime() string {
	if c.AgendaDisponivel == nil {
		return ""
	}
	return c.AgendaDisponivel.Start()
}
