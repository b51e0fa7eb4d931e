package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/service"
	"github.com/Veraticus/odonto-flow/internal/sheets"
	"github.com/Veraticus/odonto-flow/internal/testutil"
	tuitesting "github.com/Veraticus/odonto-flow/internal/tui/testing"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

type fakeSource struct {
	err       error
	consultas []model.Consulta
	slots     []model.Slot
	mu        sync.Mutex
}

func (f *fakeSource) ListConsultas(context.Context) ([]model.Consulta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.consultas, nil
}

func (f *fakeSource) ListAvailableSlots(context.Context) ([]model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func january20() time.Time {
	return time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)
}

func newTestModel(t *testing.T, source *fakeSource, opts ...Option) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Source = source
	cfg.Now = january20
	cfg.Width, cfg.Height = 120, 40
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	switch k {
	case "tab":
		return update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	case "right":
		return update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		return update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	case "enter":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadSnapshot()()
	require.IsType(t, snapshotLoadedMsg{}, msg)
	m, _ = update(t, m, msg)
	return m
}

func clinicSource() *fakeSource {
	return &fakeSource{
		consultas: testutil.ClinicMonth(),
		slots: []model.Slot{
			{Data: model.NewDate(2024, time.January, 20), HoraInicio: "09:00:00"},
			{Data: model.NewDate(2024, time.January, 22), HoraInicio: "14:00:00"},
		},
	}
}

func TestModelLoadsDashboard(t *testing.T) {
	m := newTestModel(t, clinicSource())
	assert.False(t, m.ready)
	assert.Contains(t, m.View(), "Carregando")

	m = loaded(t, m)

	assert.True(t, m.ready)
	assert.Len(t, m.billing.Filtered, 10)
	assert.Len(t, m.history.Filtered, 15)
	assert.Equal(t, 2, m.agenda.Stats.Total)

	view := tuitesting.Plain(m.View())
	assert.True(t, tuitesting.ContainsInOrder(view, "Faturamento", "Histórico", "Agenda"))
	assert.Contains(t, view, "R$ 1.800,00")
	assert.Contains(t, view, "R$ 180,00")
	assert.Contains(t, view, "Página 1 de 1")
}

func TestModelLoadFailureKeepsSnapshot(t *testing.T) {
	source := clinicSource()
	m := loaded(t, newTestModel(t, source))

	source.fail(common.ErrUnauthorized)
	m, _ = press(t, m, "r")
	assert.True(t, m.loading)

	msg := m.loadSnapshot()()
	require.IsType(t, loadFailedMsg{}, msg)
	m, cmd := update(t, m, msg)

	assert.NotNil(t, cmd)
	assert.False(t, m.loading)
	assert.True(t, m.statusError)
	assert.Contains(t, m.status, "Sessão expirada")
	assert.Len(t, m.billing.Filtered, 10)
}

func TestModelWithoutSource(t *testing.T) {
	cfg := defaultConfig()
	m := newModel(cfg)

	msg := m.Init()()
	require.IsType(t, loadFailedMsg{}, msg)

	m, _ = update(t, m, msg)
	assert.True(t, m.ready)
	assert.True(t, m.statusError)
}

func TestModelTabsAndPaging(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))
	require.Equal(t, viewmodel.TabBilling, m.tab)

	m, _ = press(t, m, "tab")
	require.Equal(t, viewmodel.TabHistory, m.tab)
	assert.Equal(t, 10, m.historyTable.Len())

	m, _ = press(t, m, "right")
	assert.Equal(t, 2, m.history.Page.Current)
	assert.Equal(t, 5, m.historyTable.Len())

	m, _ = press(t, m, "right")
	assert.Equal(t, 2, m.history.Page.Current)

	m, _ = press(t, m, "left")
	assert.Equal(t, 1, m.history.Page.Current)

	m, _ = press(t, m, "tab")
	assert.Equal(t, viewmodel.TabAgenda, m.tab)
	assert.Contains(t, m.View(), "20/01/2024")

	m, _ = press(t, m, "tab")
	assert.Equal(t, viewmodel.TabBilling, m.tab)
}

func TestModelBillingRanges(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))

	m, _ = press(t, m, "M")
	assert.True(t, m.billing.IsEmpty())
	assert.Equal(t, time.December, m.billing.From.Month())

	m, _ = press(t, m, "m")
	assert.Len(t, m.billing.Filtered, 10)

	m, _ = press(t, m, "a")
	assert.Nil(t, m.billing.From)
	assert.Len(t, m.billing.Filtered, 10)
}

func TestModelHistoryFilters(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))
	m, _ = press(t, m, "tab")

	m, _ = press(t, m, "s")
	assert.Len(t, m.history.Filtered, 10)
	assert.Equal(t, "Concluídas", m.history.StatusLabel())

	m, _ = press(t, m, "/")
	require.True(t, m.searching)
	m, _ = press(t, m, "q")
	assert.False(t, m.quitting, "typing in the search box must not quit")
	m, cmd := press(t, m, "esc")
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.False(t, m.searching)
	assert.Empty(t, m.history.Search)

	m, _ = press(t, m, "/")
	for _, r := range "ana" {
		m, _ = press(t, m, string(r))
	}
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.False(t, m.searching)
	assert.Equal(t, "ana", m.history.Search)
	assert.Len(t, m.history.Filtered, 2)

	m, _ = press(t, m, "c")
	assert.Empty(t, m.history.Search)
	assert.Len(t, m.history.Filtered, 15)
}

func TestModelHistoryDayFilter(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))
	m, _ = press(t, m, "tab")

	selected, ok := m.historyTable.Selected()
	require.True(t, ok)

	m, _ = press(t, m, "d")
	require.NotNil(t, m.history.Day)
	for _, c := range m.history.Filtered {
		d, _ := c.EffectiveDate()
		sd, _ := selected.EffectiveDate()
		assert.Equal(t, sd.ISO(), d.ISO())
	}

	m, _ = press(t, m, "D")
	assert.Nil(t, m.history.Day)
}

func TestModelExportUsesFilteredList(t *testing.T) {
	writer := sheets.NewMockWriter()
	var prefixes []string
	exporter := func(prefix string) (service.ReportWriter, error) {
		prefixes = append(prefixes, prefix)
		return writer, nil
	}

	m := loaded(t, newTestModel(t, clinicSource(), WithPageSize(3), WithExporter(exporter)))
	require.Equal(t, 3, m.billingTable.Len())

	m, cmd := press(t, m, "e")
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, exportDoneMsg{destination: "Faturamento", count: 10}, msg)

	assert.Equal(t, []string{"faturamento"}, prefixes)
	calls := writer.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Faturamento", calls[0].Title)
	assert.Len(t, calls[0].Consultas, 10)
	assert.True(t, calls[0].IncludeFinancial)

	m, _ = update(t, m, msg)
	assert.False(t, m.statusError)
	assert.Contains(t, m.status, "10 consultas exportadas")
}

func TestModelExportErrors(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))

	_, cmd := press(t, m, "e")
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, common.ErrMissingConfig)

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "e")
	assert.True(t, m.statusError)
	assert.Contains(t, m.status, "agenda")

	m, _ = update(t, m, exportDoneMsg{err: common.ErrNothingToExport})
	assert.Equal(t, "Nenhuma consulta para exportar", m.status)
}

func TestModelStatusExpiry(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))

	m, _ = update(t, m, loadFailedMsg{err: errors.New("boom")})
	first := m.statusSeq
	m, _ = update(t, m, loadFailedMsg{err: common.ErrFetchFailed})
	require.Greater(t, m.statusSeq, first)

	m, _ = update(t, m, clearStatusMsg{seq: first})
	assert.NotEmpty(t, m.status, "a stale expiry must not clear a newer notice")

	m, _ = update(t, m, clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestModelHelpAndQuit(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))

	m, _ = press(t, m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Ajuda")

	m, _ = press(t, m, "x")
	assert.False(t, m.showHelp)

	m, cmd := press(t, m, "q")
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelResize(t *testing.T) {
	m := loaded(t, newTestModel(t, clinicSource()))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 70, Height: 30})

	assert.Equal(t, 70, m.width)
	assert.NotEmpty(t, m.View())
}

func TestModelExportWriterFailure(t *testing.T) {
	writer := sheets.NewMockWriter()
	writer.SetWriteError(common.ErrRateLimit)
	exporter := func(string) (service.ReportWriter, error) { return writer, nil }

	m := loaded(t, newTestModel(t, clinicSource(), WithExporter(exporter)))
	m, _ = press(t, m, "tab")

	_, cmd := press(t, m, "e")
	require.NotNil(t, cmd)
	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, common.ErrRateLimit)

	calls := writer.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Histórico de Consultas", calls[0].Title)
	assert.Len(t, calls[0].Consultas, 15)
}
