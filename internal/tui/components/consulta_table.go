package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// ConsultaTableModel renders one page of consultations.
type ConsultaTableModel struct {
	theme     themes.Theme
	table     table.Model
	consultas []model.Consulta
	width     int
	height    int
	financial bool
}

// NewConsultaTable creates a table; financial adds the value column.
func NewConsultaTable(theme themes.Theme, financial bool) ConsultaTableModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := ConsultaTableModel{
		theme:     theme,
		table:     t,
		financial: financial,
		width:     80,
		height:    12,
	}
	m.updateColumns()
	return m
}

// SetConsultas replaces the rows shown.
func (m *ConsultaTableModel) SetConsultas(consultas []model.Consulta) {
	m.consultas = consultas
	rows := make([]table.Row, 0, len(consultas))
	for _, c := range consultas {
		rows = append(rows, ConsultaRow(c, m.financial))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// Selected returns the highlighted consultation, if any.
func (m ConsultaTableModel) Selected() (model.Consulta, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.consultas) {
		return model.Consulta{}, false
	}
	return m.consultas[i], true
}

// Len returns the number of rows.
func (m ConsultaTableModel) Len() int {
	return len(m.consultas)
}

// Update handles row navigation.
func (m ConsultaTableModel) Update(msg tea.Msg) (ConsultaTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m ConsultaTableModel) View() string {
	if len(m.consultas) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Italic(true).
			Render("Nenhuma consulta encontrada para os filtros selecionados.")
	}
	return m.table.View()
}

// Resize updates the component size.
func (m *ConsultaTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	// Header row and its border take two lines.
	m.table.SetHeight(max(1, height-2))
	m.updateColumns()
}

func (m *ConsultaTableModel) updateColumns() {
	available := max(m.width-4, 60)

	columns := []table.Column{
		{Title: "Data", Width: 10},
		{Title: "Horário", Width: 7},
		{Title: "Paciente", Width: max(14, int(float64(available)*0.28))},
		{Title: "Tipo", Width: max(12, int(float64(available)*0.22))},
		{Title: "Status", Width: 10},
	}
	if m.financial {
		columns = append(columns, table.Column{Title: "Valor", Width: 14})
	}
	m.table.SetColumns(columns)
}

// ConsultaRow formats a consultation as table cells.
func ConsultaRow(c model.Consulta, financial bool) table.Row {
	date := "-"
	if d, ok := c.EffectiveDate(); ok {
		date = d.Label()
	}
	start := c.StartTime()
	if start == "" {
		start = "-"
	}
	typeName := c.TypeName()
	if typeName == "" {
		typeName = "-"
	}
	patient := c.PatientName()
	if patient == "" {
		patient = "-"
	}

	row := table.Row{date, start, patient, typeName, c.Status.Label()}
	if financial {
		row = append(row, viewmodel.FormatBRL(c.Amount()))
	}
	return row
}
