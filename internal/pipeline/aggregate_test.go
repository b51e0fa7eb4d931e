package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/odonto-flow/internal/model"
)

func TestAggregate(t *testing.T) {
	consultas := []model.Consulta{
		newConsulta(1, model.StatusConcluida, charged(200), ofType("Limpeza", 120), completedOn(2024, 1, 10)),
		newConsulta(2, model.StatusConcluida, ofType("Limpeza", 120), scheduledOn(2024, 1, 3)),
		newConsulta(3, model.StatusConcluida, ofType("Canal", 0), scheduledOn(2024, 1, 10)),
		newConsulta(4, model.StatusConcluida, charged(80)),
	}

	s := Aggregate(consultas)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, "400.00", s.Total.StringFixed(2))
	assert.Equal(t, "100.00", s.Mean.StringFixed(2))
	assert.Equal(t, "200", s.Max.String())
	assert.Equal(t, "80", s.Min.String())

	require.Len(t, s.ByDay, 2)
	assert.Equal(t, "2024-01-03", s.ByDay[0].Date)
	assert.Equal(t, "03/01/2024", s.ByDay[0].Label)
	assert.Equal(t, "120", s.ByDay[0].Amount.String())
	assert.Equal(t, "2024-01-10", s.ByDay[1].Date)
	assert.Equal(t, "200", s.ByDay[1].Amount.String())

	require.Len(t, s.ByType, 3)
	assert.Equal(t, "Limpeza", s.ByType[0].Type)
	assert.Equal(t, 2, s.ByType[0].Count)
	assert.Equal(t, "320", s.ByType[0].Amount.String())
	assert.Equal(t, NoTypeLabel, s.ByType[1].Type)
	assert.Equal(t, "Canal", s.ByType[2].Type)
	assert.Equal(t, 1, s.ByType[2].Count)
	assert.True(t, s.ByType[2].Amount.IsZero())
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Mean.IsZero())
	assert.True(t, s.Max.IsZero())
	assert.True(t, s.Min.IsZero())
	assert.Empty(t, s.ByDay)
	assert.Empty(t, s.ByType)
}

func TestAggregate_SumMatchesFallbackAmounts(t *testing.T) {
	consultas := filterFixture()
	want := decimal.Zero
	for _, c := range consultas {
		want = want.Add(c.Amount())
	}
	assert.True(t, want.Equal(Aggregate(consultas).Total))
}

func TestAggregate_DaysSortedForAnyOrder(t *testing.T) {
	forward := []model.Consulta{
		newConsulta(1, model.StatusConcluida, charged(10), scheduledOn(2023, 12, 31)),
		newConsulta(2, model.StatusConcluida, charged(10), scheduledOn(2024, 1, 2)),
		newConsulta(3, model.StatusConcluida, charged(10), scheduledOn(2024, 2, 1)),
	}
	reversed := []model.Consulta{forward[2], forward[0], forward[1]}

	for _, input := range [][]model.Consulta{forward, reversed} {
		s := Aggregate(input)
		var dates []string
		for _, d := range s.ByDay {
			dates = append(dates, d.Date)
		}
		assert.Equal(t, []string{"2023-12-31", "2024-01-02", "2024-02-01"}, dates)
	}
}

func TestSummarizeHistory(t *testing.T) {
	consultas := []model.Consulta{
		newConsulta(1, model.StatusConcluida, charged(150)),
		newConsulta(2, model.StatusCancelada, charged(300)),
		newConsulta(3, model.StatusConcluida, ofType("Limpeza", 100)),
	}

	stats := SummarizeHistory(consultas)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, "250", stats.Revenue.String())
}

func TestSummarizeSlots(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	slots := []model.Slot{
		{Data: model.NewDate(2024, 3, 10), HoraInicio: "08:00"},
		{Data: model.NewDate(2024, 3, 10), HoraInicio: "08:30"},
		{Data: model.NewDate(2024, 3, 12), HoraInicio: "08:00"},
		{Data: model.NewDate(2024, 3, 17), HoraInicio: "08:00"},
		{Data: model.NewDate(2024, 3, 25), HoraInicio: "08:00"},
		{Data: model.NewDate(2024, 3, 1), HoraInicio: "08:00"},
	}

	stats := SummarizeSlots(slots, now)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.Today)
	assert.Equal(t, 4, stats.NextSevenDays)
	assert.Equal(t, 5, stats.Days)
}
