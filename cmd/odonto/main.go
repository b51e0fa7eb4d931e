package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "odonto",
		Short: "🦷 Clinic billing, history and agenda dashboard",
		Long: `odonto-flow: a terminal dashboard for the clinic's consultations.

Shows billing per period, the consultation history and the open agenda,
and exports filtered listings to Excel or Google Sheets.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	config.SetDefaults(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/odonto/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("api-url", "", "clinic API base URL")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(faturamentoCmd())
	rootCmd.AddCommand(historicoCmd())
	rootCmd.AddCommand(agendaCmd())
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr)
	ctx := handler.HandleInterrupts(context.Background(), "Nenhuma alteração foi enviada ao servidor.")

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !handler.WasInterrupted() {
		fmt.Fprintln(os.Stderr, cli.FormatError(errorText(err)))
		slog.Debug("command failed", "error", err)
		os.Exit(1)
	}
	if handler.WasInterrupted() {
		os.Exit(130)
	}
}

// errorText prefers the message written for the user over the raw chain.
func errorText(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrFetchFailed) {
		return fmt.Sprintf("%s (%v)", common.UserMessage(err), err)
	}
	return err.Error()
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// .env values only fill variables that are not already set
	if err := config.LoadDotEnv(".env", "~/.config/odonto/.env"); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/odonto", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("ODONTO")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if flag := cmd.Flags().Lookup("api-url"); flag != nil && flag.Changed {
		viper.Set("api.base_url", flag.Value.String())
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	return common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "odonto %s\n", version)
			slog.Debug("odonto version", "version", version)
		},
	}
}
