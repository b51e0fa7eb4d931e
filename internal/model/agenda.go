package model

import (
	"errors"
	"strings"
	"time"
)

// Range validation errors.
var (
	ErrIncompleteRange = errors.New("start and end dates are required")
	ErrInvertedRange   = errors.New("end date must not be before start date")
)

// Slot is an open, bookable time unit generated from a work schedule.
type Slot struct {
	Data       Date   `json:"data"`
	HoraInicio string `json:"horaInicio"`
	HoraFim    string `json:"horaFim,omitempty"`
	ID         int64  `json:"id,omitempty"`
	Disponivel bool   `json:"disponivel"`
}

// Start returns the start time trimmed to HH:MM.
func (s Slot) Start() string {
	return clockLabel(s.HoraInicio)
}

// End returns the end time trimmed to HH:MM.
func (s Slot) End() string {
	return clockLabel(s.HoraFim)
}

func clockLabel(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 5 && v[2] == ':' {
		return v[:5]
	}
	return v
}

// DiaSemana is a weekday as the API names it.
type DiaSemana string

// Weekday constants.
const (
	Segunda DiaSemana = "SEGUNDA"
	Terca   DiaSemana = "TERCA"
	Quarta  DiaSemana = "QUARTA"
	Quinta  DiaSemana = "QUINTA"
	Sexta   DiaSemana = "SEXTA"
	Sabado  DiaSemana = "SABADO"
	Domingo DiaSemana = "DOMINGO"
)

var diaSemanaLabels = map[DiaSemana]string{
	Segunda: "Segunda-feira",
	Terca:   "Terça-feira",
	Quarta:  "Quarta-feira",
	Quinta:  "Quinta-feira",
	Sexta:   "Sexta-feira",
	Sabado:  "Sábado",
	Domingo: "Domingo",
}

var diaSemanaWeekdays = map[DiaSemana]time.Weekday{
	Segunda: time.Monday,
	Terca:   time.Tuesday,
	Quarta:  time.Wednesday,
	Quinta:  time.Thursday,
	Sexta:   time.Friday,
	Sabado:  time.Saturday,
	Domingo: time.Sunday,
}

// Label returns the full Portuguese weekday name.
func (d DiaSemana) Label() string {
	if l, ok := diaSemanaLabels[d]; ok {
		return l
	}
	return string(d)
}

// Weekday maps the API weekday onto time.Weekday.
func (d DiaSemana) Weekday() (time.Weekday, bool) {
	w, ok := diaSemanaWeekdays[d]
	return w, ok
}

// DiaSemanaFor returns the API weekday for w.
func DiaSemanaFor(w time.Weekday) DiaSemana {
	for d, wd := range diaSemanaWeekdays {
		if wd == w {
			return d
		}
	}
	return ""
}

// Escala is a recurring work schedule for one weekday.
type Escala struct {
	DiaSemana        DiaSemana `json:"diaSemana"`
	HoraInicio       string    `json:"horaInicio"`
	HoraFim          string    `json:"horaFim"`
	ID               int64     `json:"id"`
	IntervaloMinutos int       `json:"intervaloMinutos"`
	Ativo            bool      `json:"ativo"`
}

// EscalaForm is the user input for creating or previewing a schedule.
type EscalaForm struct {
	DiaSemana        DiaSemana `json:"diaSemana" validate:"required,oneof=SEGUNDA TERCA QUARTA QUINTA SEXTA SABADO DOMINGO"`
	HoraInicio       string    `json:"horaInicio" validate:"required,datetime=15:04"`
	HoraFim          string    `json:"horaFim" validate:"required,datetime=15:04"`
	IntervaloMinutos int       `json:"intervaloMinutos" validate:"required,gte=5,lte=240"`
}

// AgendaRange is the period sent when generating or deleting released slots.
type AgendaRange struct {
	DataInicio Date `json:"dataInicio"`
	DataFim    Date `json:"dataFim"`
}

// Validate checks that both ends are set and ordered.
func (r AgendaRange) Validate() error {
	if r.DataInicio.IsZero() || r.DataFim.IsZero() {
		return ErrIncompleteRange
	}
	if r.DataFim.Before(r.DataInicio.Time) {
		return ErrInvertedRange
	}
	return nil
}
