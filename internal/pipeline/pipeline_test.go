package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/odonto-flow/internal/model"
)

func TestPipeline_EndToEnd(t *testing.T) {
	amounts := []int64{100, 200, 150, 250, 180, 120, 220, 160, 240, 180}

	var consultas []model.Consulta
	for i, amount := range amounts {
		consultas = append(consultas, newConsulta(int64(i+1), model.StatusConcluida,
			charged(amount), patient("Paciente"), scheduledOn(2024, 1, i+1)))
	}
	for i := range 5 {
		consultas = append(consultas, newConsulta(int64(100+i), model.StatusCancelada,
			charged(90), scheduledOn(2024, 2, i+1)))
	}
	require.Len(t, consultas, 15)

	billing := Filter(consultas, BillingCriteria(nil, nil))
	summary := Aggregate(billing)
	assert.Equal(t, "1800.00", summary.Total.StringFixed(2))
	assert.Equal(t, "180.00", summary.Mean.StringFixed(2))
	assert.Equal(t, 10, summary.Count)

	history := SortByRecency(Filter(consultas, HistoryCriteria(StatusTodas, nil, "")))
	page := NewPageState(DefaultPageSize, len(history))
	assert.Equal(t, 2, page.TotalPages())
	assert.Len(t, Slice(history, page), 10)
	assert.Len(t, Slice(history, page.Next()), 5)
}
