package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/config"
	"github.com/Veraticus/odonto-flow/internal/service"
	"github.com/Veraticus/odonto-flow/internal/tui"
	"github.com/Veraticus/odonto-flow/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the full-screen dashboard with the Faturamento, Histórico and Agenda
tabs. Press ? inside it for the key bindings.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "", "color theme ("+strings.Join(themes.Names, ", ")+")")
	cmd.Flags().String("export", "xlsx", "format used by the export key (xlsx, sheets)")
	cmd.Flags().StringP("output", "o", "", "directory for xlsx exports")
	cmd.Flags().String("log-file", filepath.Join(config.Dir(), "dashboard.log"), "where logs go while the dashboard owns the screen")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	logger, closeLog, err := dashboardLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	themeName, _ := cmd.Flags().GetString("theme")
	if themeName == "" {
		themeName = sess.settings.Theme
	}
	format, _ := cmd.Flags().GetString("export")
	output, _ := cmd.Flags().GetString("output")

	exporter := func(prefix string) (service.ReportWriter, error) {
		// The progress bar would draw over the dashboard.
		writer, _, err := reportWriter(ctx, format, output, prefix, io.Discard)
		return writer, err
	}

	return tui.Run(ctx,
		tui.WithSource(sess.client),
		tui.WithExporter(exporter),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithPageSize(sess.settings.PageSize),
		tui.WithLoadTimeout(sess.settings.APITimeout),
		tui.WithLogger(logger),
	)
}

// dashboardLogger sends logs to a file so they do not draw over the screen.
func dashboardLogger(cmd *cobra.Command) (*slog.Logger, func(), error) {
	path, _ := cmd.Flags().GetString("log-file")
	path = config.ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger, err := common.NewLogger(f, level, viper.GetString("logging.format"))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	previous := slog.Default()
	slog.SetDefault(logger)
	return logger, func() {
		slog.SetDefault(previous)
		_ = f.Close()
	}, nil
}
