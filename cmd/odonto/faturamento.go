package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

func faturamentoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "faturamento",
		Aliases: []string{"billing"},
		Short:   "Show billing for a period",
		Long: `Show the completed consultations of a period with total, average ticket,
largest and smallest amounts, revenue per day and per consultation type.

The current month is used when no period flag is given.`,
		Example: `  odonto faturamento
  odonto faturamento --last-month
  odonto faturamento --from 2024-01-01 --to 2024-01-31 --export xlsx`,
		RunE: runFaturamento,
	}

	cmd.Flags().String("from", "", "first day of the period (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day of the period (YYYY-MM-DD)")
	cmd.Flags().Bool("this-month", false, "use the current month")
	cmd.Flags().Bool("last-month", false, "use the previous month")
	cmd.Flags().Bool("all", false, "use every completed consultation")
	cmd.Flags().Int("page", 1, "page of the detail table")
	addExportFlags(cmd)

	return cmd
}

// billingPeriod resolves the period flags against now.
func billingPeriod(cmd *cobra.Command, now time.Time) (*time.Time, *time.Time, error) {
	fromValue, _ := cmd.Flags().GetString("from")
	toValue, _ := cmd.Flags().GetString("to")
	thisMonth, _ := cmd.Flags().GetBool("this-month")
	lastMonth, _ := cmd.Flags().GetBool("last-month")
	all, _ := cmd.Flags().GetBool("all")

	presets := 0
	for _, set := range []bool{thisMonth, lastMonth, all, fromValue != "" || toValue != ""} {
		if set {
			presets++
		}
	}
	if presets > 1 {
		return nil, nil, common.NewUserError("Use apenas um período: --from/--to, --this-month, --last-month ou --all", common.ErrInvalidConfig)
	}

	switch {
	case all:
		return nil, nil, nil
	case lastMonth:
		from, to := viewmodel.LastMonthRange(now)
		return &from, &to, nil
	case fromValue != "" || toValue != "":
		from, err := parseDayFlag("from", fromValue)
		if err != nil {
			return nil, nil, err
		}
		to, err := parseDayFlag("to", toValue)
		if err != nil {
			return nil, nil, err
		}
		return from, to, nil
	default:
		from, to := viewmodel.MonthRange(now)
		return &from, &to, nil
	}
}

func runFaturamento(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	from, to, err := billingPeriod(cmd, clock())
	if err != nil {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	consultas, err := sess.client.ListConsultas(ctx)
	if err != nil {
		return fmt.Errorf("failed to load consultations: %w", err)
	}

	view := viewmodel.NewBillingView(consultas, from, to, sess.settings.PageSize).GoToPage(pageFlag(cmd))

	fmt.Fprintln(out, cli.FormatTitle("Faturamento · "+viewmodel.PeriodLabel(from, to)))
	printCards(out, view.Cards())

	if view.IsEmpty() {
		fmt.Fprintln(out, cli.FormatInfo("Nenhuma consulta concluída no período."))
		return nil
	}

	printDayTotals(out, view.Summary.ByDay)
	printTypeTotals(out, view.Summary.ByType)
	printSection(out, cli.MoneyIcon+" Consultas")
	printConsultas(out, view.Rows(), view.Page, true)

	return exportListing(cmd, "Faturamento", "faturamento", view.Filtered)
}
