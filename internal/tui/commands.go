package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

// loadSnapshot refreshes consultations and slots in parallel. A refresh
// overtaken by a newer one produces no message.
func (m Model) loadSnapshot() tea.Cmd {
	ctx := m.config.Context
	timeout := m.config.LoadTimeout
	consultas, slots := m.consultas, m.slots
	now := m.config.Now
	logger := m.config.Logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var (
			loadedConsultas []model.Consulta
			loadedSlots     []model.Slot
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			items, err := consultas.Load(gctx)
			if err != nil {
				return fmt.Errorf("consultas: %w", err)
			}
			loadedConsultas = items
			return nil
		})
		g.Go(func() error {
			items, err := slots.Load(gctx)
			if err != nil {
				return fmt.Errorf("agenda: %w", err)
			}
			loadedSlots = items
			return nil
		})

		if err := g.Wait(); err != nil {
			if errors.Is(err, common.ErrSuperseded) {
				logger.Debug("refresh superseded")
				return nil
			}
			logger.Warn("refresh failed", "error", err)
			return loadFailedMsg{err: err}
		}

		logger.Debug("refresh completed",
			"consultas", len(loadedConsultas),
			"slots", len(loadedSlots))

		return snapshotLoadedMsg{
			consultas: loadedConsultas,
			slots:     loadedSlots,
			loadedAt:  now(),
		}
	}
}

// exportCurrent writes the filtered list of the active tab. Export ignores
// pagination.
func (m Model) exportCurrent() tea.Cmd {
	var (
		prefix    string
		title     string
		consultas []model.Consulta
	)
	switch m.tab {
	case viewmodel.TabBilling:
		prefix, title, consultas = "faturamento", "Faturamento", m.billing.Filtered
	case viewmodel.TabHistory:
		prefix, title, consultas = "historico_consultas", "Histórico de Consultas", m.history.Filtered
	default:
		return nil
	}

	exporter := m.config.Exporter
	ctx := m.config.Context
	logger := m.config.Logger

	return func() tea.Msg {
		if exporter == nil {
			return exportDoneMsg{err: common.NewUserError("Exportação não configurada", common.ErrMissingConfig)}
		}
		writer, err := exporter(prefix)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		if err := writer.Write(ctx, title, consultas, true); err != nil {
			logger.Warn("export failed", "prefix", prefix, "error", err)
			return exportDoneMsg{err: err}
		}

		destination := title
		if p, ok := writer.(interface{ Path() string }); ok {
			destination = p.Path()
		}
		return exportDoneMsg{destination: destination, count: len(consultas)}
	}
}

// expireStatus clears notice seq after the configured delay.
func (m Model) expireStatus(seq int) tea.Cmd {
	return tea.Tick(m.config.StatusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
