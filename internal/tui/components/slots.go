package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// RenderSlotDays lists open slots grouped by day.
func RenderSlotDays(theme themes.Theme, days []viewmodel.SlotDay, width int) string {
	if len(days) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			Render("Nenhum horário disponível. Gere a agenda com 'odonto agenda gerar'.")
	}

	var lines []string
	for _, day := range days {
		weekday := model.DiaSemanaFor(day.Date.Weekday()).Label()
		header := fmt.Sprintf("%s  %s  (%d)", day.Date.Label(), weekday, len(day.Slots))
		lines = append(lines, theme.Bold.Render(header))

		times := make([]string, 0, len(day.Slots))
		for _, s := range day.Slots {
			times = append(times, s.Start())
		}
		lines = append(lines, "  "+lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(max(20, width-2)).
			Render(strings.Join(times, "  ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
