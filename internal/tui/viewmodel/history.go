package viewmodel

import (
	"strconv"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/pipeline"
)

// HistoryView is the derived state of the history page: finished
// consultations, most recent first.
type HistoryView struct {
	Day      *time.Time
	Search   string
	Status   pipeline.StatusFilter
	snapshot []model.Consulta
	Filtered []model.Consulta
	Stats    pipeline.HistoryStats
	Page     pipeline.PageState
}

// NewHistoryView derives the page from a snapshot with no filters applied.
func NewHistoryView(consultas []model.Consulta, pageSize int) HistoryView {
	v := HistoryView{
		snapshot: consultas,
		Status:   pipeline.StatusTodas,
		Page:     pipeline.NewPageState(pageSize, 0),
	}
	return v.recompute()
}

func (v HistoryView) recompute() HistoryView {
	criteria := pipeline.HistoryCriteria(v.Status, v.Day, v.Search)
	v.Filtered = pipeline.SortByRecency(pipeline.Filter(v.snapshot, criteria))
	v.Stats = pipeline.SummarizeHistory(v.Filtered)
	v.Page = v.Page.WithTotal(len(v.Filtered))
	return v
}

// WithSnapshot swaps in freshly loaded consultations.
func (v HistoryView) WithSnapshot(consultas []model.Consulta) HistoryView {
	v.snapshot = consultas
	return v.recompute()
}

// WithSearch filters by patient or type name.
func (v HistoryView) WithSearch(term string) HistoryView {
	v.Search = term
	v.Page = v.Page.GoTo(1)
	return v.recompute()
}

// WithStatus restricts the status shown.
func (v HistoryView) WithStatus(s pipeline.StatusFilter) HistoryView {
	v.Status = s
	v.Page = v.Page.GoTo(1)
	return v.recompute()
}

// CycleStatus steps through todas, concluídas and canceladas.
func (v HistoryView) CycleStatus() HistoryView {
	switch v.Status {
	case pipeline.StatusTodas:
		return v.WithStatus(pipeline.StatusConcluidas)
	case pipeline.StatusConcluidas:
		return v.WithStatus(pipeline.StatusCanceladas)
	default:
		return v.WithStatus(pipeline.StatusTodas)
	}
}

// WithDay restricts the list to one day; nil clears it.
func (v HistoryView) WithDay(day *time.Time) HistoryView {
	v.Day = day
	v.Page = v.Page.GoTo(1)
	return v.recompute()
}

// NextPage advances the list.
func (v HistoryView) NextPage() HistoryView {
	v.Page = v.Page.Next()
	return v
}

// PreviousPage moves the list back.
func (v HistoryView) PreviousPage() HistoryView {
	v.Page = v.Page.Previous()
	return v
}

// GoToPage jumps to page n.
func (v HistoryView) GoToPage(n int) HistoryView {
	v.Page = v.Page.GoTo(n)
	return v
}

// Rows returns the consultations on the current page.
func (v HistoryView) Rows() []model.Consulta {
	return pipeline.Slice(v.Filtered, v.Page)
}

// StatusLabel names the active status filter.
func (v HistoryView) StatusLabel() string {
	switch v.Status {
	case pipeline.StatusConcluidas:
		return "Concluídas"
	case pipeline.StatusCanceladas:
		return "Canceladas"
	default:
		return "Todas"
	}
}

// Cards returns the summary tiles.
func (v HistoryView) Cards() []Card {
	return []Card{
		{Title: "Total", Value: strconv.Itoa(v.Stats.Total), Hint: "consultas finalizadas"},
		{Title: "Concluídas", Value: strconv.Itoa(v.Stats.Completed)},
		{Title: "Canceladas", Value: strconv.Itoa(v.Stats.Cancelled)},
		{Title: "Valor Total", Value: FormatBRL(v.Stats.Revenue), Hint: "consultas concluídas"},
	}
}
