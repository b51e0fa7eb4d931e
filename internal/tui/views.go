package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/tui/components"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	if m.showHelp {
		return m.renderHelp()
	}

	usable := max(m.width-4, 40)

	var body string
	switch m.tab {
	case viewmodel.TabBilling:
		body = m.renderBilling(usable)
	case viewmodel.TabHistory:
		body = m.renderHistory(usable)
	case viewmodel.TabAgenda:
		body = m.renderAgenda(usable)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		"",
		body,
		m.renderStatusBar(),
	)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Odonto Flow"),
		m.spinner.View()+" Carregando consultas...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(viewmodel.Tabs))
	for _, t := range viewmodel.Tabs {
		style := m.theme.TabInactive
		if t == m.tab {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(t.Title()))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("🦷 Odonto Flow  ")
	return lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title}, tabs...)...)
}

func (m Model) renderBilling(width int) string {
	v := m.billing

	header := m.theme.Subtitle.Render("Período: " + viewmodel.PeriodLabel(v.From, v.To))
	cards := components.RenderCards(m.theme, v.Cards(), width)

	half := max(30, width/2-2)
	breakdown := lipgloss.JoinHorizontal(
		lipgloss.Top,
		components.RenderBreakdown(m.theme, "Faturamento por dia", components.DayItems(v.Summary.ByDay), half, 7),
		"  ",
		components.RenderBreakdown(m.theme, "Faturamento por tipo", components.TypeItems(v.Summary.ByType), half, 7),
	)
	if width < 80 {
		breakdown = components.RenderBreakdown(m.theme, "Faturamento por tipo", components.TypeItems(v.Summary.ByType), width, 5)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		cards,
		"",
		breakdown,
		"",
		m.billingTable.View(),
		m.renderPager(v.Page.Current, v.Page.TotalPages(), viewmodel.ShowingLabel(v.Page, "consultas")),
	)
}

func (m Model) renderHistory(width int) string {
	v := m.history

	filters := []string{"Status: " + v.StatusLabel()}
	if v.Search != "" {
		filters = append(filters, fmt.Sprintf("Busca: %q", v.Search))
	}
	if v.Day != nil {
		filters = append(filters, "Dia: "+v.Day.Format("02/01/2006"))
	}

	sections := []string{
		m.theme.Subtitle.Render(strings.Join(filters, "  |  ")),
		components.RenderCards(m.theme, v.Cards(), width),
		"",
	}
	if m.searching {
		sections = append(sections, m.search.View())
	}
	sections = append(sections,
		m.historyTable.View(),
		m.renderPager(v.Page.Current, v.Page.TotalPages(), viewmodel.ShowingLabel(v.Page, "consultas")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderAgenda(width int) string {
	v := m.agenda

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render("Horários liberados"),
		components.RenderCards(m.theme, v.Cards(), width),
		"",
		components.RenderSlotDays(m.theme, v.VisibleDays(), width),
		"",
		m.renderPager(v.Page.Current, v.Page.TotalPages(), viewmodel.ShowingLabel(v.Page, "dias")),
	)
}

func (m Model) renderPager(current, total int, showing string) string {
	prev, next := "←", "→"
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	if current <= 1 {
		prev = muted.Render(prev)
	}
	if current >= total {
		next = muted.Render(next)
	}
	return fmt.Sprintf("%s Página %d de %d %s   %s", prev, current, total, next, muted.Render(showing))
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navegação", [][2]string{
			{"Tab/Shift+Tab", "trocar de aba"},
			{"←/h  →/l", "página anterior/próxima"},
			{"↑/k  ↓/j", "mover na tabela"},
		}},
		{"Faturamento", [][2]string{
			{"m", "este mês"},
			{"M", "mês anterior"},
			{"a", "todo o período"},
		}},
		{"Histórico", [][2]string{
			{"/", "buscar paciente ou tipo"},
			{"s", "alternar status"},
			{"d / D", "filtrar pelo dia / limpar dia"},
			{"c", "limpar filtros"},
		}},
		{"Geral", [][2]string{
			{"r", "atualizar dados"},
			{"e", "exportar lista filtrada"},
			{"?", "ajuda"},
			{"q", "sair"},
		}},
	}

	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Width(16)
	var lines []string
	for _, section := range sections {
		lines = append(lines, m.theme.Subtitle.MarginBottom(0).Render(section.title))
		for _, b := range section.bindings {
			lines = append(lines, "  "+keyStyle.Render(b[0])+m.theme.Normal.Render(b[1]))
		}
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Pressione qualquer tecla para fechar"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(56).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				append([]string{m.theme.Title.Render("Odonto Flow - Ajuda")}, lines...)...,
			)),
	)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.loading:
		left = m.spinner.View() + " Atualizando..."
	case m.status != "" && m.statusError:
		left = m.theme.StatusError.Render(m.status)
	case m.status != "":
		left = m.theme.StatusSuccess.Render(m.status)
	case !m.loadedAt.IsZero():
		left = lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("Atualizado às " + m.loadedAt.Format("15:04:05"))
	}

	right := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("r atualizar · e exportar · ? ajuda · q sair")

	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}
