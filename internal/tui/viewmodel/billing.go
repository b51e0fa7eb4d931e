package viewmodel

import (
	"strconv"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/pipeline"
)

// BillingView is the derived state of the revenue page: completed
// consultations in a period, their summary and the visible page.
type BillingView struct {
	From     *time.Time
	To       *time.Time
	snapshot []model.Consulta
	Filtered []model.Consulta
	Summary  pipeline.Summary
	Page     pipeline.PageState
}

// NewBillingView derives the page from a snapshot.
func NewBillingView(consultas []model.Consulta, from, to *time.Time, pageSize int) BillingView {
	v := BillingView{
		snapshot: consultas,
		From:     from,
		To:       to,
		Page:     pipeline.NewPageState(pageSize, 0),
	}
	return v.recompute()
}

func (v BillingView) recompute() BillingView {
	v.Filtered = pipeline.Filter(v.snapshot, pipeline.BillingCriteria(v.From, v.To))
	v.Summary = pipeline.Aggregate(v.Filtered)
	v.Page = v.Page.WithTotal(len(v.Filtered))
	return v
}

// WithSnapshot swaps in freshly loaded consultations.
func (v BillingView) WithSnapshot(consultas []model.Consulta) BillingView {
	v.snapshot = consultas
	return v.recompute()
}

// WithRange changes the billing period.
func (v BillingView) WithRange(from, to *time.Time) BillingView {
	v.From, v.To = from, to
	v.Page = v.Page.GoTo(1)
	return v.recompute()
}

// NextPage advances the detail table.
func (v BillingView) NextPage() BillingView {
	v.Page = v.Page.Next()
	return v
}

// PreviousPage moves the detail table back.
func (v BillingView) PreviousPage() BillingView {
	v.Page = v.Page.Previous()
	return v
}

// GoToPage jumps to page n.
func (v BillingView) GoToPage(n int) BillingView {
	v.Page = v.Page.GoTo(n)
	return v
}

// Rows returns the consultations on the current page.
func (v BillingView) Rows() []model.Consulta {
	return pipeline.Slice(v.Filtered, v.Page)
}

// Cards returns the summary tiles.
func (v BillingView) Cards() []Card {
	return []Card{
		{Title: "Faturamento Total", Value: FormatBRL(v.Summary.Total), Hint: PeriodLabel(v.From, v.To)},
		{Title: "Ticket Médio", Value: FormatBRL(v.Summary.Mean), Hint: "por consulta"},
		{Title: "Consultas", Value: strconv.Itoa(v.Summary.Count), Hint: "concluídas"},
		{Title: "Maior Valor", Value: FormatBRL(v.Summary.Max), Hint: "Menor: " + FormatBRL(v.Summary.Min)},
	}
}

// IsEmpty reports whether the period has no completed consultations.
func (v BillingView) IsEmpty() bool {
	return len(v.Filtered) == 0
}
