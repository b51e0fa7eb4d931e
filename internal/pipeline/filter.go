// Package pipeline derives the lists each dashboard page renders from a
// fetched snapshot: filter, aggregate, sort and paginate. Every stage is a
// pure function and never mutates its input.
package pipeline

import (
	"strings"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// Criteria is a conjunction of optional predicates. Zero fields match everything.
type Criteria struct {
	From     *time.Time
	To       *time.Time
	Search   string
	Statuses []model.Status
}

// StatusFilter names the status choices offered on the history page.
type StatusFilter string

// History status filters.
const (
	StatusTodas      StatusFilter = "todas"
	StatusConcluidas StatusFilter = "concluidas"
	StatusCanceladas StatusFilter = "canceladas"
)

// ParseStatusFilter accepts the history page status names. Unknown values
// fall back to "todas".
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusConcluidas:
		return StatusConcluidas
	case StatusCanceladas:
		return StatusCanceladas
	default:
		return StatusTodas
	}
}

// Statuses expands the filter into the status set it admits.
func (f StatusFilter) Statuses() []model.Status {
	switch f {
	case StatusConcluidas:
		return []model.Status{model.StatusConcluida}
	case StatusCanceladas:
		return []model.Status{model.StatusCancelada}
	default:
		return []model.Status{model.StatusConcluida, model.StatusCancelada}
	}
}

// BillingCriteria selects completed consultations within [from, to].
func BillingCriteria(from, to *time.Time) Criteria {
	return Criteria{
		Statuses: []model.Status{model.StatusConcluida},
		From:     from,
		To:       to,
	}
}

// HistoryCriteria selects finished consultations, optionally on a single day
// and matching a search term.
func HistoryCriteria(status StatusFilter, day *time.Time, search string) Criteria {
	return Criteria{
		Statuses: status.Statuses(),
		From:     day,
		To:       day,
		Search:   search,
	}
}

// IsZero reports whether the criteria admit every record.
func (c Criteria) IsZero() bool {
	return len(c.Statuses) == 0 && c.From == nil && c.To == nil && strings.TrimSpace(c.Search) == ""
}

// Match reports whether a single consultation satisfies every predicate.
func (c Criteria) Match(consulta model.Consulta) bool {
	return c.matchStatus(consulta) && c.matchDate(consulta) && c.matchSearch(consulta)
}

func (c Criteria) matchStatus(consulta model.Consulta) bool {
	if len(c.Statuses) == 0 {
		return true
	}
	for _, s := range c.Statuses {
		if consulta.Status == s {
			return true
		}
	}
	return false
}

func (c Criteria) matchDate(consulta model.Consulta) bool {
	if c.From == nil && c.To == nil {
		return true
	}
	d, ok := consulta.EffectiveDate()
	if !ok {
		return false
	}
	if c.From != nil && d.Before(model.DateOf(*c.From).Time) {
		return false
	}
	if c.To != nil && d.After(model.DateOf(*c.To).Time) {
		return false
	}
	return true
}

func (c Criteria) matchSearch(consulta model.Consulta) bool {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{consulta.PatientName(), consulta.TypeName()} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter returns the consultations matching c in their original order.
func Filter(consultas []model.Consulta, c Criteria) []model.Consulta {
	out := make([]model.Consulta, 0, len(consultas))
	for _, consulta := range consultas {
		if c.Match(consulta) {
			out = append(out, consulta)
		}
	}
	return out
}
