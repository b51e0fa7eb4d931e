package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/pipeline"
	"github.com/Veraticus/odonto-flow/internal/tui/viewmodel"
)

var (
	headerStyle = cli.TableHeaderStyle
	mutedStyle  = lipgloss.NewStyle().Foreground(cli.SubtleColor)
)

func successLine(msg string) string {
	return cli.FormatSuccess(msg)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printCards lists summary cards as "Title: Value (hint)" lines.
func printCards(w io.Writer, cards []viewmodel.Card) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range cards {
		line := fmt.Sprintf("%s:\t%s", c.Title, cli.FormatMoney(c.Value))
		if c.Hint != "" {
			line += "\t" + mutedStyle.Render(c.Hint)
		}
		fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, cli.TitleStyle.Render(title))
}

func printDayTotals(w io.Writer, days []pipeline.DayTotal) {
	printSection(w, cli.CalendarIcon+" Faturamento por dia")
	if len(days) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render("Sem dados no período"))
		fmt.Fprintln(w)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", headerStyle.Render("Data"), headerStyle.Render("Valor"))
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%s\t\n", d.Label, viewmodel.FormatBRL(d.Amount))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func printTypeTotals(w io.Writer, types []pipeline.TypeTotal) {
	printSection(w, cli.ChartIcon+" Faturamento por tipo")
	if len(types) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render("Sem dados no período"))
		fmt.Fprintln(w)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		headerStyle.Render("Tipo"),
		headerStyle.Render("Consultas"),
		headerStyle.Render("Valor"))
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Type, t.Count, viewmodel.FormatBRL(t.Amount))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

// printConsultas prints one page of consultations followed by the pager line.
func printConsultas(w io.Writer, rows []model.Consulta, page pipeline.PageState, financial bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render("Nenhuma consulta encontrada."))
		return
	}

	headers := []string{"Data", "Horário", "Paciente", "Tipo", "Status"}
	if financial {
		headers = append(headers, "Valor")
	}
	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		rules[i] = strings.Repeat("-", max(len([]rune(h)), 8))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, c := range rows {
		date := "-"
		if d, ok := c.EffectiveDate(); ok {
			date = d.Label()
		}
		cells := []string{
			date,
			dash(c.StartTime()),
			dash(viewmodel.TruncateString(c.PatientName(), 28)),
			dash(viewmodel.TruncateString(c.TypeName(), 24)),
			c.Status.Label(),
		}
		if financial {
			cells = append(cells, viewmodel.FormatBRL(c.Amount()))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s · %s",
		viewmodel.PageLabel(page),
		viewmodel.ShowingLabel(page, "consultas"))))
}
