package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
)

const (
	maxSheetName   = 31
	moneyFormat    = `"R$" #,##0.00`
	headerFill     = "1D4ED8"
	headerFontTint = "FFFFFF"
)

// ExcelWriter writes consultations to an .xlsx file. It implements
// service.ReportWriter.
type ExcelWriter struct {
	progress io.Writer
	logger   *slog.Logger
	path     string
}

// ExcelOption configures an ExcelWriter.
type ExcelOption func(*ExcelWriter)

// WithProgress renders a progress bar on w while rows are written.
func WithProgress(w io.Writer) ExcelOption {
	return func(e *ExcelWriter) {
		e.progress = w
	}
}

// WithLogger sets the writer's logger.
func WithLogger(l *slog.Logger) ExcelOption {
	return func(e *ExcelWriter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExcelWriter creates a writer targeting path.
func NewExcelWriter(path string, opts ...ExcelOption) *ExcelWriter {
	w := &ExcelWriter{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the output file.
func (w *ExcelWriter) Path() string {
	return w.path
}

// Write renders consultas into a single sheet named after title.
func (w *ExcelWriter) Write(ctx context.Context, title string, consultas []model.Consulta, includeFinancial bool) error {
	if len(consultas) == 0 {
		return common.ErrNothingToExport
	}

	table := Rows(consultas, includeFinancial)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := w.writeHeader(f, sheet, table); err != nil {
		return err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	bar := w.newProgressBar(len(table.Rows))
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, cellErr)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				w.logger.Warn("failed to update progress bar", "error", err)
			}
		}
	}

	for i, col := range table.Columns {
		name, nameErr := excelize.ColumnNumberToName(i + 1)
		if nameErr != nil {
			return fmt.Errorf("failed to name column %d: %w", i+1, nameErr)
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
		if col.Money {
			if err := f.SetCellStyle(sheet, name+"2", fmt.Sprintf("%s%d", name, len(table.Rows)+1), moneyStyle); err != nil {
				return fmt.Errorf("failed to format column %s: %w", name, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", w.path, err)
	}

	w.logger.Info("exported consultas",
		"file", w.path,
		"rows", len(table.Rows),
		"financial", includeFinancial)
	return nil
}

func (w *ExcelWriter) writeHeader(f *excelize.File, sheet string, table Table) error {
	headers := table.Headers()
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontTint},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *ExcelWriter) newProgressBar(total int) *progressbar.ProgressBar {
	if w.progress == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Exportando consultas...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w.progress)
		}),
	)
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", "-", "?", "", "*", "", "[", "(", "]", ")")

func sheetName(title string) string {
	title = strings.TrimSpace(sheetNameReplacer.Replace(title))
	if title == "" {
		return "Consultas"
	}
	runes := []rune(title)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return string(runes)
}

func strPtr(s string) *string {
	return &s
}
