package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding

	// Filters
	Search     key.Binding
	Status     key.Binding
	ThisMonth  key.Binding
	LastMonth  key.Binding
	AllTime    key.Binding
	ClearDay   key.Binding
	FilterDay  key.Binding
	ClearQuery key.Binding

	// Application
	Refresh key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "linha anterior"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "próxima linha"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "página anterior"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "próxima página"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "próxima aba"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "aba anterior"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "alternar status"),
		),
		ThisMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "este mês"),
		),
		LastMonth: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mês anterior"),
		),
		AllTime: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "todo o período"),
		),
		FilterDay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "filtrar pelo dia da linha"),
		),
		ClearDay: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "limpar dia"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "limpar filtros"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "atualizar"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exportar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ajuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "sair"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevPage, k.NextPage, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.NextTab, k.PrevTab},
		{k.ThisMonth, k.LastMonth, k.AllTime},
		{k.Search, k.Status, k.FilterDay, k.ClearDay, k.ClearQuery},
		{k.Refresh, k.Export, k.Help, k.Quit},
	}
}
