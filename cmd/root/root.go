// Package root contains the root command for the application
package root

import (
	"fjacquet/ledger-insights/internal/anomaly"
	"fjacquet/ledger-insights/internal/config"
	"fjacquet/ledger-insights/internal/currencyutils"
	"fjacquet/ledger-insights/internal/fileutils"
	"fjacquet/ledger-insights/internal/forecast"
	"fjacquet/ledger-insights/internal/ledger"
	"fjacquet/ledger-insights/internal/logging"
	"fjacquet/ledger-insights/internal/recommend"
	"fjacquet/ledger-insights/internal/trends"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	LedgerDir string
	From      string
	To        string
	Output    string
	Format    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-insights",
		Short: "A CLI tool to analyze a transaction ledger and surface financial insights.",
		Long: `ledger-insights reads a company's transaction ledger from CSV and YAML files
and produces trend analysis, anomaly detection, forecasts and recommendations.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-insights!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all engines and utilities
			trends.SetLogger(Log)
			anomaly.SetLogger(Log)
			forecast.SetLogger(Log)
			recommend.SetLogger(Log)
			ledger.SetLogger(Log)
			currencyutils.SetLogger(Log)
			fileutils.SetLogger(Log)
			logging.SetDefault(logging.NewLogrusAdapterFromLogger(Log))
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.LedgerDir, "ledger", "l", ".", "Ledger data directory")
	Cmd.PersistentFlags().StringVar(&SharedFlags.From, "from", "", "Period start date (YYYY-MM-DD, defaults to 30 days before the end)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.To, "to", "", "Period end date (YYYY-MM-DD, defaults to today)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (defaults to stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Report format: json or yaml (defaults to configuration)")
}
