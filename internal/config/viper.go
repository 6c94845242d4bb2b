// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		Directory  string `mapstructure:"directory" yaml:"directory"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Report struct {
		Format    string `mapstructure:"format" yaml:"format"`
		OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	} `mapstructure:"report" yaml:"report"`

	Analysis struct {
		MinTransactions int `mapstructure:"min_transactions" yaml:"min_transactions"`

		Trends struct {
			ThresholdPercent       float64 `mapstructure:"threshold_percent" yaml:"threshold_percent"`
			VolumeThresholdPercent float64 `mapstructure:"volume_threshold_percent" yaml:"volume_threshold_percent"`
		} `mapstructure:"trends" yaml:"trends"`

		Anomalies struct {
			ExpenseSpikeZ     float64 `mapstructure:"expense_spike_z" yaml:"expense_spike_z"`
			RevenueDropZ      float64 `mapstructure:"revenue_drop_z" yaml:"revenue_drop_z"`
			LargeTransactionZ float64 `mapstructure:"large_transaction_z" yaml:"large_transaction_z"`
		} `mapstructure:"anomalies" yaml:"anomalies"`

		Forecast struct {
			SmoothingAlpha float64 `mapstructure:"smoothing_alpha" yaml:"smoothing_alpha"`
			DepletionDays  float64 `mapstructure:"depletion_days" yaml:"depletion_days"`
		} `mapstructure:"forecast" yaml:"forecast"`
	} `mapstructure:"analysis" yaml:"analysis"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledger-insights")
	v.AddConfigPath(".ledger-insights")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("LEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Ledger defaults
	v.SetDefault("ledger.directory", ".")
	v.SetDefault("ledger.date_format", "2006-01-02")

	// Report defaults
	v.SetDefault("report.format", "json")
	v.SetDefault("report.output_dir", "")

	// Analysis defaults
	v.SetDefault("analysis.min_transactions", 5)
	v.SetDefault("analysis.trends.threshold_percent", 15.0)
	v.SetDefault("analysis.trends.volume_threshold_percent", 20.0)
	v.SetDefault("analysis.anomalies.expense_spike_z", 2.0)
	v.SetDefault("analysis.anomalies.revenue_drop_z", -2.0)
	v.SetDefault("analysis.anomalies.large_transaction_z", 3.0)
	v.SetDefault("analysis.forecast.smoothing_alpha", 0.3)
	v.SetDefault("analysis.forecast.depletion_days", 14.0)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}

	if config.Analysis.MinTransactions < 1 {
		return fmt.Errorf("analysis.min_transactions must be at least 1, got: %d", config.Analysis.MinTransactions)
	}

	if a := config.Analysis.Forecast.SmoothingAlpha; a <= 0 || a >= 1 {
		return fmt.Errorf("analysis.forecast.smoothing_alpha must be between 0 and 1 exclusive, got: %f", a)
	}

	if config.Analysis.Anomalies.ExpenseSpikeZ <= 0 {
		return fmt.Errorf("analysis.anomalies.expense_spike_z must be positive, got: %f", config.Analysis.Anomalies.ExpenseSpikeZ)
	}

	if config.Analysis.Anomalies.RevenueDropZ >= 0 {
		return fmt.Errorf("analysis.anomalies.revenue_drop_z must be negative, got: %f", config.Analysis.Anomalies.RevenueDropZ)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
