package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/tui/themes"
)

// SearchModel is the history search box.
type SearchModel struct {
	theme themes.Theme
	input textinput.Model
	width int
}

// NewSearch creates an unfocused search box.
func NewSearch(theme themes.Theme) SearchModel {
	input := textinput.New()
	input.Placeholder = "Buscar por paciente ou tipo de consulta..."
	input.CharLimit = 60
	input.Prompt = "🔍 "

	return SearchModel{theme: theme, input: input, width: 60}
}

// Open focuses the box, prefilled with the current term.
func (m SearchModel) Open(current string) (SearchModel, tea.Cmd) {
	m.input.SetValue(current)
	m.input.CursorEnd()
	return m, tea.Batch(m.input.Focus(), textinput.Blink)
}

// Focused reports whether the box is taking input.
func (m SearchModel) Focused() bool {
	return m.input.Focused()
}

// Value returns the text typed so far.
func (m SearchModel) Value() string {
	return m.input.Value()
}

// Update handles typing. Enter submits and Esc cancels.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.input.Blur()
			query := m.input.Value()
			return m, func() tea.Msg { return SearchSubmittedMsg{Query: query} }
		case "esc":
			m.input.Blur()
			return m, func() tea.Msg { return SearchCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Resize sets the box width.
func (m *SearchModel) Resize(width int) {
	m.width = width
	m.input.Width = max(10, width-8)
}

// View renders the search box.
func (m SearchModel) View() string {
	hint := lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render("Enter para buscar, Esc para cancelar")

	return m.theme.RoundedBox.
		Padding(0, 1).
		Width(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.input.View(), hint))
}
