package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/odonto-flow/internal/api"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/config"
	"github.com/Veraticus/odonto-flow/internal/export"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/service"
	"github.com/Veraticus/odonto-flow/internal/sheets"
	"github.com/Veraticus/odonto-flow/internal/storage"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// clock is replaced in tests.
var clock = time.Now

// session bundles what every API-backed command needs.
type session struct {
	store    service.TokenStore
	client   *api.Client
	settings config.Settings
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		common.LogError(err, "failed to close token store", common.Fields{"database": s.settings.DatabasePath})
	}
}

// initStorage opens the token store with proper path expansion.
func initStorage(ctx context.Context, dbPath string) (service.TokenStore, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openSession loads settings, opens the token store and builds the API
// client that reads its bearer token from that store.
func openSession(ctx context.Context) (*session, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(settings.APIBaseURL,
		api.WithTimeout(settings.APITimeout),
		api.WithTokenSource(store),
		api.WithLogger(slog.Default()),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	common.LogDebug("session opened", common.Fields{
		"api":      client.BaseURL(),
		"database": settings.DatabasePath,
		"timeout":  settings.APITimeout.String(),
	})
	return &session{settings: settings, store: store, client: client}, nil
}

// parseDayFlag parses a YYYY-MM-DD flag value; empty means unset.
func parseDayFlag(name, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Data inválida em --%s: use AAAA-MM-DD", name), err)
	}
	t := d.Time
	return &t, nil
}

// agendaRangeFlags reads the required --from/--to pair used by agenda commands.
func agendaRangeFlags(cmd *cobra.Command) (model.AgendaRange, error) {
	fromValue, _ := cmd.Flags().GetString("from")
	toValue, _ := cmd.Flags().GetString("to")

	from, err := parseDayFlag("from", fromValue)
	if err != nil {
		return model.AgendaRange{}, err
	}
	to, err := parseDayFlag("to", toValue)
	if err != nil {
		return model.AgendaRange{}, err
	}

	var r model.AgendaRange
	if from != nil {
		r.DataInicio = model.DateOf(*from)
	}
	if to != nil {
		r.DataFim = model.DateOf(*to)
	}
	if err := r.Validate(); err != nil {
		return r, common.NewUserError("Informe --from e --to, com --from até --to", err)
	}
	return r, nil
}

// pageFlag returns --page, treating values below one as the first page.
func pageFlag(cmd *cobra.Command) int {
	page, _ := cmd.Flags().GetInt("page")
	return max(page, 1)
}

// addExportFlags registers the shared export flags.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("export", "", "export the filtered list (xlsx, sheets)")
	cmd.Flags().StringP("output", "o", "", "output file or directory for xlsx exports")
}

// reportWriter builds the destination for --export. The returned label
// describes where the data went.
func reportWriter(ctx context.Context, format, output, prefix string, progress io.Writer) (service.ReportWriter, string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "xlsx", "excel":
		path := xlsxPath(output, prefix, clock())
		return export.NewExcelWriter(path, export.WithProgress(progress)), path, nil
	case "sheets", "google":
		cfg, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return nil, "", common.NewUserError("Google Sheets não configurado; rode 'odonto auth google'", err)
		}
		writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
		if err != nil {
			return nil, "", err
		}
		label := "Google Sheets"
		if cfg.SpreadsheetID != "" {
			label = fmt.Sprintf("Google Sheets (%s)", cfg.SpreadsheetID)
		}
		return writer, label, nil
	default:
		return nil, "", common.NewUserError(fmt.Sprintf("Formato de exportação desconhecido: %q (use xlsx ou sheets)", format), common.ErrInvalidConfig)
	}
}

// xlsxPath resolves --output: empty means the working directory, a
// directory gets the dated default name, anything else is used as given.
func xlsxPath(output, prefix string, now time.Time) string {
	name := export.FileName(prefix, now, "xlsx")
	output = config.ExpandPath(strings.TrimSpace(output))
	if output == "" {
		return name
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) {
		return filepath.Join(output, name)
	}
	return output
}

// exportListing writes the filtered consultations and reports the outcome.
func exportListing(cmd *cobra.Command, title, prefix string, consultas []model.Consulta) error {
	format, _ := cmd.Flags().GetString("export")
	if format == "" {
		return nil
	}
	output, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()
	writer, destination, err := reportWriter(ctx, format, output, prefix, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, title, consultas, true); err != nil {
		return fmt.Errorf("failed to export %s: %w", title, err)
	}
	common.LogInfo("listing exported", common.Fields{
		"title":       title,
		"destination": destination,
		"consultas":   len(consultas),
	})

	fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("%d consultas exportadas para %s", len(consultas), destination)))
	return nil
}
