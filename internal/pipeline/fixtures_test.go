package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/odonto-flow/internal/model"
)

type consultaOption func(*model.Consulta)

func newConsulta(id int64, status model.Status, opts ...consultaOption) model.Consulta {
	c := model.Consulta{ID: id, Status: status}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func charged(v int64) consultaOption {
	return func(c *model.Consulta) {
		c.ValorCobrado = decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
	}
}

func ofType(name string, price int64) consultaOption {
	return func(c *model.Consulta) {
		c.TipoConsulta = &model.TipoConsulta{Nome: name}
		if price > 0 {
			c.TipoConsulta.Preco = decimal.NullDecimal{Decimal: decimal.NewFromInt(price), Valid: true}
		}
	}
}

func patient(name string) consultaOption {
	return func(c *model.Consulta) {
		c.Paciente = &model.Paciente{Nome: name}
	}
}

func scheduledOn(year int, month time.Month, day int) consultaOption {
	return func(c *model.Consulta) {
		c.AgendaDisponivel = &model.Slot{Data: model.NewDate(year, month, day), HoraInicio: "09:00:00"}
	}
}

func completedOn(year int, month time.Month, day int) consultaOption {
	return func(c *model.Consulta) {
		c.DataConclusao = &model.Timestamp{Time: time.Date(year, month, day, 15, 0, 0, 0, time.UTC)}
	}
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ids(consultas []model.Consulta) []int64 {
	out := make([]int64, len(consultas))
	for i, c := range consultas {
		out[i] = c.ID
	}
	return out
}
