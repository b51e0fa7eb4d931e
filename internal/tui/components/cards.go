package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/tui/themes"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

const minCardWidth = 18

// RenderCards lays summary cards side by side, or one per line when the
// terminal is too narrow.
func RenderCards(theme themes.Theme, cards []viewmodel.Card, width int) string {
	if len(cards) == 0 {
		return ""
	}

	// Each card adds two border columns and two padding columns.
	cardWidth := width/len(cards) - 4
	if cardWidth < minCardWidth {
		return renderCardList(theme, cards)
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, renderCard(theme, c, cardWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCard(theme themes.Theme, c viewmodel.Card, width int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Muted).Render(viewmodel.TruncateString(c.Title, width)),
		theme.CardValue.Render(c.Value),
	}
	if c.Hint != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			Render(viewmodel.TruncateString(c.Hint, width)))
	}
	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderCardList(theme themes.Theme, cards []viewmodel.Card) string {
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.Muted).Render(c.Title+": ")+theme.CardValue.Render(c.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
