package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// ConsultaBuilder assembles a consultation fixture.
type ConsultaBuilder struct {
	c model.Consulta
}

// NewConsulta starts a fixture with id and status.
func NewConsulta(id int64, status model.Status) *ConsultaBuilder {
	return &ConsultaBuilder{c: model.Consulta{ID: id, Status: status}}
}

// Charged sets the charged amount.
func (b *ConsultaBuilder) Charged(amount int64) *ConsultaBuilder {
	b.c.ValorCobrado = decimal.NullDecimal{Decimal: decimal.NewFromInt(amount), Valid: true}
	return b
}

// Type sets the consultation type and its default price.
func (b *ConsultaBuilder) Type(name string, price int64) *ConsultaBuilder {
	b.c.TipoConsulta = &model.TipoConsulta{Nome: name}
	if price > 0 {
		b.c.TipoConsulta.Preco = decimal.NullDecimal{Decimal: decimal.NewFromInt(price), Valid: true}
	}
	return b
}

// Patient sets the patient name.
func (b *ConsultaBuilder) Patient(name string) *ConsultaBuilder {
	b.c.Paciente = &model.Paciente{Nome: name}
	return b
}

// Scheduled books the consultation in a slot on date at clock (HH:MM).
func (b *ConsultaBuilder) Scheduled(date model.Date, clock string) *ConsultaBuilder {
	b.c.AgendaDisponivel = &model.Slot{Data: date, HoraInicio: clock + ":00"}
	return b
}

// Completed sets the completion timestamp.
func (b *ConsultaBuilder) Completed(at time.Time) *ConsultaBuilder {
	b.c.DataConclusao = &model.Timestamp{Time: at}
	return b
}

// Build returns the fixture.
func (b *ConsultaBuilder) Build() model.Consulta {
	return b.c
}

// ClinicMonth returns fifteen consultations from January 2024: ten completed
// ones billing 1800 in total and five cancelled ones.
func ClinicMonth() []model.Consulta {
	amounts := []int64{100, 200, 150, 250, 180, 120, 220, 160, 240, 180}
	patients := []string{"Ana Lima", "Bruno Costa", "Carla Dias", "Diego Alves", "Elisa Rocha"}
	types := []string{"Limpeza", "Restauração", "Avaliação"}

	out := make([]model.Consulta, 0, 15)
	for i, amount := range amounts {
		date := model.NewDate(2024, time.January, i+1)
		out = append(out, NewConsulta(int64(i+1), model.StatusConcluida).
			Charged(amount).
			Patient(patients[i%len(patients)]).
			Type(types[i%len(types)], 0).
			Scheduled(date, "09:00").
			Completed(date.Add(10*time.Hour)).
			Build())
	}
	for i := range 5 {
		out = append(out, NewConsulta(int64(11+i), model.StatusCancelada).
			Patient(patients[i]).
			Type("Limpeza", 120).
			Scheduled(model.NewDate(2024, time.January, 15+i), "14:00").
			Build())
	}
	return out
}
