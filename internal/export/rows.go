// Package export turns a filtered consultation list into spreadsheet rows
// and writes them to .xlsx files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// Column describes one exported column.
type Column struct {
	Header string
	Width  float64
	Money  bool
}

// Table is the exported layout: a header and one row per consultation.
type Table struct {
	Columns []Column
	Rows    [][]any
}

var (
	baseColumns = []Column{
		{Header: "Data", Width: 12},
		{Header: "Horário", Width: 10},
		{Header: "Paciente", Width: 30},
		{Header: "Tipo de Consulta", Width: 24},
		{Header: "Status", Width: 12},
	}
	financialColumns = []Column{
		{Header: "Valor", Width: 14, Money: true},
		{Header: "Data de Conclusão", Width: 18},
	}
)

// Rows lays out consultas in input order. Financial columns hold the billed
// amount (with the type-price fallback) and the completion date.
func Rows(consultas []model.Consulta, includeFinancial bool) Table {
	columns := append([]Column{}, baseColumns...)
	if includeFinancial {
		columns = append(columns, financialColumns...)
	}

	rows := make([][]any, 0, len(consultas))
	for _, c := range consultas {
		row := []any{
			dateLabel(c),
			c.StartTime(),
			c.PatientName(),
			c.TypeName(),
			c.Status.Label(),
		}
		if includeFinancial {
			completed := ""
			if t, ok := c.CompletedAt(); ok {
				completed = model.DateOf(t).Label()
			}
			row = append(row, c.Amount().InexactFloat64(), completed)
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// Headers returns the column titles.
func (t Table) Headers() []any {
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// Values returns the header followed by every row.
func (t Table) Values() [][]any {
	values := make([][]any, 0, len(t.Rows)+1)
	values = append(values, t.Headers())
	return append(values, t.Rows...)
}

// FileName builds "<prefix>_<yyyy-mm-dd>.<ext>".
func FileName(prefix string, now time.Time, ext string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "consultas"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(model.ISODate), strings.TrimPrefix(ext, "."))
}

func dateLabel(c model.Consulta) string {
	if d, ok := c.ScheduledDate(); ok {
		return d.Label()
	}
	if d, ok := c.EffectiveDate(); ok {
		return d.Label()
	}
	return ""
}
