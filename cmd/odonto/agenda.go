package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

func agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show and manage open agenda slots",
		Long: `Show the open slots released for booking, grouped by day, with counts for
today and the next seven days.`,
		RunE: runAgenda,
	}

	cmd.Flags().Int("page", 1, "page of the day listing")

	cmd.AddCommand(agendaGerarCmd())
	cmd.AddCommand(agendaExcluirCmd())
	cmd.AddCommand(agendaPreviewCmd())

	return cmd
}

func runAgenda(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	slots, err := sess.client.ListAvailableSlots(ctx)
	if err != nil {
		return fmt.Errorf("failed to load slots: %w", err)
	}

	view := viewmodel.NewAgendaView(slots, clock(), sess.settings.PageSize)
	view.Page = view.Page.GoTo(pageFlag(cmd))

	fmt.Fprintln(out, cli.FormatTitle("Agenda"))
	printCards(out, view.Cards())
	printSlotDays(out, view.VisibleDays())
	if len(view.Days) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%s · %s",
			viewmodel.PageLabel(view.Page),
			viewmodel.ShowingLabel(view.Page, "dias"))))
	}
	return nil
}

func printSlotDays(w io.Writer, days []viewmodel.SlotDay) {
	if len(days) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render("Nenhum horário disponível. Gere a agenda com 'odonto agenda gerar'."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Data"),
		headerStyle.Render("Dia"),
		headerStyle.Render("Vagas"),
		headerStyle.Render("Horários"))
	for _, day := range days {
		times := make([]string, 0, len(day.Slots))
		for _, s := range day.Slots {
			times = append(times, s.Start())
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			day.Date.Label(),
			model.DiaSemanaFor(day.Date.Weekday()).Label(),
			len(day.Slots),
			strings.Join(times, " "))
	}
	_ = tw.Flush()
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func rangeLabel(r model.AgendaRange) string {
	return fmt.Sprintf("%s a %s", r.DataInicio.Label(), r.DataFim.Label())
}

func agendaGerarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gerar",
		Short: "Release slots for a period from the active schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := agendaRangeFlags(cmd)
			if err != nil {
				return err
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.client.GenerateAgenda(ctx, r); err != nil {
				return fmt.Errorf("failed to generate agenda: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successLine("Agenda gerada para "+rangeLabel(r)))
			return nil
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func agendaExcluirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excluir",
		Short: "Withdraw the open slots of a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := agendaRangeFlags(cmd)
			if err != nil {
				return err
			}

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
				answer, err := reader.Ask(ctx, fmt.Sprintf("Excluir os horários livres de %s? [s/N]", rangeLabel(r)))
				if err != nil {
					return err
				}
				if !isYes(answer) {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nada foi excluído."))
					return nil
				}
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.client.DeleteAgenda(ctx, r); err != nil {
				return fmt.Errorf("failed to delete agenda: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successLine("Horários livres excluídos para "+rangeLabel(r)))
			return nil
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

func agendaPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Expand a work schedule into slot times without calling the API",
		Example: `  odonto agenda preview --dia SEGUNDA --dia QUARTA --inicio 08:00 --fim 12:00 --intervalo 30
  odonto agenda preview --dia SEXTA --inicio 14:00 --fim 18:00 --intervalo 60 --from 2024-03-01 --to 2024-03-31`,
		RunE: runAgendaPreview,
	}

	cmd.Flags().StringSlice("dia", nil, "weekday (SEGUNDA..DOMINGO), repeatable")
	cmd.Flags().String("inicio", "", "shift start (HH:MM)")
	cmd.Flags().String("fim", "", "shift end (HH:MM)")
	cmd.Flags().Int("intervalo", 30, "slot length in minutes")
	cmd.Flags().String("from", "", "lay the schedule over this first day (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "lay the schedule over this last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("dia")

	return cmd
}

func runAgendaPreview(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	days, _ := cmd.Flags().GetStringSlice("dia")
	start, _ := cmd.Flags().GetString("inicio")
	end, _ := cmd.Flags().GetString("fim")
	interval, _ := cmd.Flags().GetInt("intervalo")

	forms := make([]model.EscalaForm, 0, len(days))
	for _, d := range days {
		form := model.EscalaForm{
			DiaSemana:        model.DiaSemana(strings.ToUpper(strings.TrimSpace(d))),
			HoraInicio:       start,
			HoraFim:          end,
			IntervaloMinutos: interval,
		}
		if err := form.Validate(); err != nil {
			return common.NewUserError("Escala inválida: "+strings.TrimPrefix(err.Error(), model.ErrInvalidForm.Error()+": "), err)
		}
		forms = append(forms, form)
	}

	fromValue, _ := cmd.Flags().GetString("from")
	toValue, _ := cmd.Flags().GetString("to")
	if fromValue == "" && toValue == "" {
		fmt.Fprintln(out, cli.FormatTitle("Horários por dia da semana"))
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			headerStyle.Render("Dia"),
			headerStyle.Render("Vagas"),
			headerStyle.Render("Horários"))
		for _, f := range forms {
			times, err := f.SlotTimes()
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", f.DiaSemana.Label(), len(times), strings.Join(times, " "))
		}
		return tw.Flush()
	}

	r, err := agendaRangeFlags(cmd)
	if err != nil {
		return err
	}
	slots, err := model.PreviewSlots(forms, r)
	if err != nil {
		return err
	}

	view := viewmodel.NewAgendaView(slots, clock(), len(slots)+1)
	fmt.Fprintln(out, cli.FormatTitle("Prévia da agenda · "+rangeLabel(r)))
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d horários em %d dias", view.Stats.Total, view.Stats.Days)))
	fmt.Fprintln(out)
	printSlotDays(out, view.Days)
	return nil
}
