package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/odonto-flow/internal/model"
)

func filterFixture() []model.Consulta {
	return []model.Consulta{
		newConsulta(1, model.StatusConcluida, patient("Ana Lima"), ofType("Limpeza", 120), completedOn(2024, 1, 5)),
		newConsulta(2, model.StatusCancelada, patient("Bruno Costa"), ofType("Endodontia", 400), scheduledOn(2024, 1, 6)),
		newConsulta(3, model.StatusAgendada, patient("Carla Dias"), scheduledOn(2024, 1, 20)),
		newConsulta(4, model.StatusConcluida, ofType("Clareamento", 300), scheduledOn(2024, 1, 8)),
		newConsulta(5, model.StatusConcluida, patient("Ana Souza")),
		newConsulta(6, model.StatusConcluida),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{
			name:     "empty criteria keeps everything",
			criteria: Criteria{},
			want:     []int64{1, 2, 3, 4, 5, 6},
		},
		{
			name:     "status set",
			criteria: Criteria{Statuses: []model.Status{model.StatusCancelada, model.StatusAgendada}},
			want:     []int64{2, 3},
		},
		{
			name:     "lower bound uses effective date",
			criteria: Criteria{From: day(2024, 1, 6)},
			want:     []int64{2, 3, 4},
		},
		{
			name:     "inclusive range",
			criteria: Criteria{From: day(2024, 1, 5), To: day(2024, 1, 6)},
			want:     []int64{1, 2},
		},
		{
			name:     "bound ignores time of day",
			criteria: Criteria{To: day(2024, 1, 5)},
			want:     []int64{1},
		},
		{
			name:     "search is case-insensitive over patient",
			criteria: Criteria{Search: "  ANA "},
			want:     []int64{1, 5},
		},
		{
			name:     "search over type name",
			criteria: Criteria{Search: "clare"},
			want:     []int64{4},
		},
		{
			name:     "conjunction",
			criteria: Criteria{Statuses: []model.Status{model.StatusConcluida}, Search: "ana", From: day(2024, 1, 1)},
			want:     []int64{1},
		},
		{
			name:     "billing criteria",
			criteria: BillingCriteria(nil, nil),
			want:     []int64{1, 4, 5, 6},
		},
		{
			name:     "history criteria on one day",
			criteria: HistoryCriteria(StatusTodas, day(2024, 1, 6), ""),
			want:     []int64{2},
		},
		{
			name:     "history cancelled only",
			criteria: HistoryCriteria(ParseStatusFilter("canceladas"), nil, ""),
			want:     []int64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(filterFixture(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_IdempotentAndPure(t *testing.T) {
	input := filterFixture()
	snapshot := filterFixture()
	criteria := Criteria{Statuses: []model.Status{model.StatusConcluida}, Search: "a"}

	once := Filter(input, criteria)
	twice := Filter(once, criteria)

	assert.Equal(t, once, twice)
	assert.Equal(t, snapshot, input)
	for _, c := range once {
		assert.Contains(t, input, c)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, Criteria{Search: "x"}))
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, StatusConcluidas, ParseStatusFilter("Concluidas"))
	assert.Equal(t, StatusCanceladas, ParseStatusFilter("canceladas"))
	assert.Equal(t, StatusTodas, ParseStatusFilter(""))
	assert.Equal(t, StatusTodas, ParseStatusFilter("agendadas"))
}

func TestCriteria_IsZero(t *testing.T) {
	assert.True(t, Criteria{Search: "  "}.IsZero())
	assert.False(t, BillingCriteria(nil, nil).IsZero())
}
