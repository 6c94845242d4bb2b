// Package container provides dependency injection for the ledger-insights
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/ledger-insights/internal/anomaly"
	"fjacquet/ledger-insights/internal/config"
	"fjacquet/ledger-insights/internal/forecast"
	"fjacquet/ledger-insights/internal/insights"
	"fjacquet/ledger-insights/internal/logging"
	"fjacquet/ledger-insights/internal/recommend"
	"fjacquet/ledger-insights/internal/report"
	"fjacquet/ledger-insights/internal/trends"
)

// Container holds all application dependencies and provides methods to access
// them. It acts as the central registry for dependency injection, ensuring
// that all components receive their required dependencies through
// constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config

	trendAnalyzer *trends.Analyzer
	detector      *anomaly.Detector
	forecaster    *forecast.Engine
	recommender   *recommend.Engine
	aggregator    *insights.Aggregator
	reportGen     *report.Generator
}

// NewContainer creates and wires all application dependencies.
// Analysis knobs exposed through configuration override the engine defaults;
// everything else keeps its built-in value.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	trendCfg := trends.DefaultConfig()
	trendCfg.TrendThresholdPercent = cfg.Analysis.Trends.ThresholdPercent
	trendCfg.VolumeThresholdPercent = cfg.Analysis.Trends.VolumeThresholdPercent
	trendAnalyzer := trends.NewAnalyzer(trendCfg)

	anomalyCfg := anomaly.DefaultConfig()
	anomalyCfg.ExpenseSpikeZ = cfg.Analysis.Anomalies.ExpenseSpikeZ
	anomalyCfg.RevenueDropZ = cfg.Analysis.Anomalies.RevenueDropZ
	anomalyCfg.LargeTransactionZ = cfg.Analysis.Anomalies.LargeTransactionZ
	detector := anomaly.NewDetector(anomalyCfg)

	forecastCfg := forecast.DefaultConfig()
	forecastCfg.SmoothingAlpha = cfg.Analysis.Forecast.SmoothingAlpha
	forecastCfg.DepletionDays = cfg.Analysis.Forecast.DepletionDays
	forecaster := forecast.NewEngine(forecastCfg)

	recommender := recommend.NewEngine(recommend.DefaultConfig())

	aggregator := insights.New(trendAnalyzer, detector, forecaster, recommender,
		insights.WithMinTransactions(cfg.Analysis.MinTransactions),
		insights.WithLogger(logger))

	logger.Info("Container initialized successfully",
		logging.Field{Key: "min_transactions", Value: cfg.Analysis.MinTransactions},
		logging.Field{Key: "report_format", Value: cfg.Report.Format})

	return &Container{
		logger:        logger,
		config:        cfg,
		trendAnalyzer: trendAnalyzer,
		detector:      detector,
		forecaster:    forecaster,
		recommender:   recommender,
		aggregator:    aggregator,
		reportGen:     report.NewGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetAggregator returns the fully wired insights aggregator.
func (c *Container) GetAggregator() *insights.Aggregator {
	return c.aggregator
}

// GetTrendAnalyzer returns the trend analysis engine.
func (c *Container) GetTrendAnalyzer() *trends.Analyzer {
	return c.trendAnalyzer
}

// GetDetector returns the anomaly detection engine.
func (c *Container) GetDetector() *anomaly.Detector {
	return c.detector
}

// GetForecaster returns the forecasting engine.
func (c *Container) GetForecaster() *forecast.Engine {
	return c.forecaster
}

// GetRecommender returns the recommendation engine.
func (c *Container) GetRecommender() *recommend.Engine {
	return c.recommender
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reportGen
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
