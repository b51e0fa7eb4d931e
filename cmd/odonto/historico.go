package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/pipeline"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

func historicoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "historico",
		Aliases: []string{"history"},
		Short:   "Show completed and cancelled consultations",
		Long: `Show finished consultations, most recent first, with totals per status
and the revenue of the completed ones.`,
		Example: `  odonto historico --status canceladas
  odonto historico --search ana --page 2
  odonto historico --date 2024-01-15 --export sheets`,
		RunE: runHistorico,
	}

	cmd.Flags().String("status", string(pipeline.StatusTodas), "status filter (todas, concluidas, canceladas)")
	cmd.Flags().String("date", "", "only consultations of this day (YYYY-MM-DD)")
	cmd.Flags().StringP("search", "s", "", "match patient or consultation type name")
	cmd.Flags().Int("page", 1, "page of the listing")
	addExportFlags(cmd)

	return cmd
}

// statusFlag validates --status; ParseStatusFilter alone would silently
// widen a typo to "todas".
func statusFlag(value string) (pipeline.StatusFilter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return pipeline.StatusTodas, nil
	}
	status := pipeline.ParseStatusFilter(value)
	if string(status) != value {
		return "", common.NewUserError(fmt.Sprintf("Status inválido: %q (use todas, concluidas ou canceladas)", value), common.ErrInvalidConfig)
	}
	return status, nil
}

func runHistorico(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	statusValue, _ := cmd.Flags().GetString("status")
	status, err := statusFlag(statusValue)
	if err != nil {
		return err
	}
	dateValue, _ := cmd.Flags().GetString("date")
	day, err := parseDayFlag("date", dateValue)
	if err != nil {
		return err
	}
	search, _ := cmd.Flags().GetString("search")

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	consultas, err := sess.client.ListConsultas(ctx)
	if err != nil {
		return fmt.Errorf("failed to load consultations: %w", err)
	}

	view := viewmodel.NewHistoryView(consultas, sess.settings.PageSize).
		WithStatus(status).
		WithDay(day).
		WithSearch(search).
		GoToPage(pageFlag(cmd))

	title := "Histórico · " + view.StatusLabel()
	if day != nil {
		title += " · " + day.Format("02/01/2006")
	}
	if strings.TrimSpace(search) != "" {
		title += fmt.Sprintf(" · %q", strings.TrimSpace(search))
	}
	fmt.Fprintln(out, cli.FormatTitle(title))
	printCards(out, view.Cards())
	printConsultas(out, view.Rows(), view.Page, true)

	return exportListing(cmd, "Histórico de Consultas", "historico_consultas", view.Filtered)
}
