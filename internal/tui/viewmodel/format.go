package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/odonto-flow/internal/pipeline"
)

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.800,00".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		return "-" + out
	}
	return out
}

// TruncateString truncates s to maxLen runes, ending with an ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

// PageLabel returns "Página X de Y".
func PageLabel(p pipeline.PageState) string {
	return fmt.Sprintf("Página %d de %d", p.Current, p.TotalPages())
}

// ShowingLabel returns "Mostrando X a Y de Z consultas".
func ShowingLabel(p pipeline.PageState, noun string) string {
	first, last, total := p.Showing()
	return fmt.Sprintf("Mostrando %d a %d de %d %s", first, last, total, noun)
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// LastMonthRange returns the first and last day of the month before t.
func LastMonthRange(t time.Time) (time.Time, time.Time) {
	first, _ := MonthRange(t)
	return MonthRange(first.AddDate(0, 0, -1))
}

// PeriodLabel renders an optional date range.
func PeriodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "Todo o período"
	case from == nil:
		return "Até " + to.Format("02/01/2006")
	case to == nil:
		return "A partir de " + from.Format("02/01/2006")
	default:
		return from.Format("02/01/2006") + " a " + to.Format("02/01/2006")
	}
}
