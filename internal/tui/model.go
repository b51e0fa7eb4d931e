package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/odonto-flow/internal/api"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/tui/components"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// Model holds the main TUI state.
type Model struct {
	loadedAt     time.Time
	theme        themes.Theme
	consultas    *api.Loader[model.Consulta]
	slots        *api.Loader[model.Slot]
	status       string
	config       Config
	keymap       KeyMap
	spinner      spinner.Model
	search       components.SearchModel
	billingTable components.ConsultaTableModel
	historyTable components.ConsultaTableModel
	billing      viewmodel.BillingView
	agenda       viewmodel.AgendaView
	history      viewmodel.HistoryView
	tab          viewmodel.Tab
	statusSeq    int
	width        int
	height       int
	statusError  bool
	loading      bool
	searching    bool
	showHelp     bool
	ready        bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	now := cfg.Now()
	from, to := viewmodel.MonthRange(now)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		config:       cfg,
		theme:        cfg.Theme,
		keymap:       DefaultKeyMap(),
		spinner:      sp,
		search:       components.NewSearch(cfg.Theme),
		billingTable: components.NewConsultaTable(cfg.Theme, true),
		historyTable: components.NewConsultaTable(cfg.Theme, true),
		billing:      viewmodel.NewBillingView(nil, &from, &to, cfg.PageSize),
		history:      viewmodel.NewHistoryView(nil, cfg.PageSize),
		agenda:       viewmodel.NewAgendaView(nil, now, cfg.PageSize),
		tab:          viewmodel.TabBilling,
		width:        cfg.Width,
		height:       cfg.Height,
	}
	if cfg.Source != nil {
		m.consultas = api.NewLoader(cfg.Source.ListConsultas)
		m.slots = api.NewLoader(cfg.Source.ListAvailableSlots)
	}
	m.handleResize()
	return m
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	if m.consultas == nil {
		return func() tea.Msg {
			return loadFailedMsg{err: common.NewUserError("Fonte de dados não configurada", common.ErrMissingConfig)}
		}
	}
	return tea.Batch(m.spinner.Tick, m.loadSnapshot())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotLoadedMsg:
		m.loading = false
		m.ready = true
		m.loadedAt = msg.loadedAt
		m.billing = m.billing.WithSnapshot(msg.consultas)
		m.history = m.history.WithSnapshot(msg.consultas)
		m.agenda = m.agenda.WithSnapshot(msg.slots)
		m.syncTables()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		// The first failure still shows the (empty) dashboard so the user
		// can retry.
		m.ready = true
		return m.notice(loadErrorText(msg.err), true)

	case exportDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, common.ErrNothingToExport) {
				return m.notice("Nenhuma consulta para exportar", true)
			}
			return m.notice("Falha na exportação: "+common.UserMessage(msg.err), true)
		}
		return m.notice(fmt.Sprintf("%d consultas exportadas para %s", msg.count, msg.destination), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusError = false
		}
		return m, nil

	case components.SearchSubmittedMsg:
		m.searching = false
		m.history = m.history.WithSearch(msg.Query)
		m.syncTables()
		return m, nil

	case components.SearchCancelledMsg:
		m.searching = false
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey applies one key press outside the search box.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case m.showHelp:
		// Any other key closes the help overlay.
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = m.tab.Next()
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		for range len(viewmodel.Tabs) - 1 {
			m.tab = m.tab.Next()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keymap.Export):
		if m.tab == viewmodel.TabAgenda {
			return m.notice("A agenda não é exportável", true)
		}
		return m, m.exportCurrent()

	case key.Matches(msg, m.keymap.PrevPage):
		m = m.turnPage(-1)
		return m, nil

	case key.Matches(msg, m.keymap.NextPage):
		m = m.turnPage(1)
		return m, nil
	}

	switch m.tab {
	case viewmodel.TabBilling:
		return m.handleBillingKey(msg)
	case viewmodel.TabHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleBillingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.config.Now()
	switch {
	case key.Matches(msg, m.keymap.ThisMonth):
		from, to := viewmodel.MonthRange(now)
		m.billing = m.billing.WithRange(&from, &to)
	case key.Matches(msg, m.keymap.LastMonth):
		from, to := viewmodel.LastMonthRange(now)
		m.billing = m.billing.WithRange(&from, &to)
	case key.Matches(msg, m.keymap.AllTime):
		m.billing = m.billing.WithRange(nil, nil)
	default:
		var cmd tea.Cmd
		m.billingTable, cmd = m.billingTable.Update(msg)
		return m, cmd
	}
	m.syncTables()
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		var cmd tea.Cmd
		m.search, cmd = m.search.Open(m.history.Search)
		return m, cmd
	case key.Matches(msg, m.keymap.Status):
		m.history = m.history.CycleStatus()
	case key.Matches(msg, m.keymap.FilterDay):
		c, ok := m.historyTable.Selected()
		if !ok {
			return m, nil
		}
		d, ok := c.EffectiveDate()
		if !ok {
			return m, nil
		}
		day := d.Time
		m.history = m.history.WithDay(&day)
	case key.Matches(msg, m.keymap.ClearDay):
		m.history = m.history.WithDay(nil)
	case key.Matches(msg, m.keymap.ClearQuery):
		m.history = viewmodel.NewHistoryView(nil, m.config.PageSize)
		if m.consultas != nil {
			snapshot, _ := m.consultas.Snapshot()
			m.history = m.history.WithSnapshot(snapshot)
		}
	default:
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}
	m.syncTables()
	return m, nil
}

// refresh starts an explicit reload. The current snapshot stays on screen
// until the new one arrives.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.consultas == nil {
		return m.notice("Fonte de dados não configurada", true)
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadSnapshot())
}

func (m Model) turnPage(delta int) Model {
	switch m.tab {
	case viewmodel.TabBilling:
		if delta > 0 {
			m.billing = m.billing.NextPage()
		} else {
			m.billing = m.billing.PreviousPage()
		}
	case viewmodel.TabHistory:
		if delta > 0 {
			m.history = m.history.NextPage()
		} else {
			m.history = m.history.PreviousPage()
		}
	case viewmodel.TabAgenda:
		if delta > 0 {
			m.agenda = m.agenda.NextPage()
		} else {
			m.agenda = m.agenda.PreviousPage()
		}
	}
	m.syncTables()
	return m
}

// notice shows a transient message in the status bar.
func (m Model) notice(text string, isError bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusError = isError
	return m, m.expireStatus(m.statusSeq)
}

// syncTables pushes the visible pages into the table components.
func (m *Model) syncTables() {
	m.billingTable.SetConsultas(m.billing.Rows())
	m.historyTable.SetConsultas(m.history.Rows())
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	usable := max(m.width-4, 40)
	// Header, cards, pager and status bar take roughly fourteen lines.
	tableHeight := max(m.config.PageSize+2, m.height-14)

	m.billingTable.Resize(usable, tableHeight)
	m.historyTable.Resize(usable, tableHeight)
	m.search.Resize(min(usable, 70))
}

func loadErrorText(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return "Sessão expirada: faça login com 'odonto auth login'"
	case errors.Is(err, common.ErrFetchFailed):
		return "Erro ao carregar dados; exibindo a última versão disponível"
	default:
		return "Erro ao carregar dados: " + common.UserMessage(err)
	}
}
