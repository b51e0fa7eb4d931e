package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/odonto-flow/internal/pipeline"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// BarItem is one labelled amount in a breakdown chart.
type BarItem struct {
	Label  string
	Amount decimal.Decimal
	Count  int
}

// DayItems converts per-day totals to bar items.
func DayItems(days []pipeline.DayTotal) []BarItem {
	items := make([]BarItem, 0, len(days))
	for _, d := range days {
		items = append(items, BarItem{Label: d.Label, Amount: d.Amount})
	}
	return items
}

// TypeItems converts per-type totals to bar items.
func TypeItems(types []pipeline.TypeTotal) []BarItem {
	items := make([]BarItem, 0, len(types))
	for _, t := range types {
		items = append(items, BarItem{Label: t.Type, Amount: t.Amount, Count: t.Count})
	}
	return items
}

// RenderBreakdown draws a titled horizontal bar chart, scaled to the
// largest amount. At most limit items are shown.
func RenderBreakdown(theme themes.Theme, title string, items []BarItem, width, limit int) string {
	lines := []string{theme.Subtitle.MarginBottom(0).Render(title)}
	if len(items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Muted).Render("Sem dados no período"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	peak := decimal.Zero
	for _, it := range items {
		if it.Amount.GreaterThan(peak) {
			peak = it.Amount
		}
	}

	labelWidth := 12
	amountWidth := 14
	barWidth := max(5, width-labelWidth-amountWidth-4)
	bar := progress.New(
		progress.WithSolidFill(string(theme.Primary)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	shown := items
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, it := range shown {
		ratio := 0.0
		if peak.IsPositive() {
			ratio = it.Amount.Div(peak).InexactFloat64()
		}
		label := viewmodel.TruncateString(it.Label, labelWidth)
		if it.Count > 0 {
			label = viewmodel.TruncateString(fmt.Sprintf("%s (%d)", it.Label, it.Count), labelWidth)
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %*s",
			labelWidth, label,
			bar.ViewAs(ratio),
			amountWidth, viewmodel.FormatBRL(it.Amount)))
	}
	if hidden := len(items) - len(shown); hidden > 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Muted).
			Render(fmt.Sprintf("... e mais %d", hidden)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
