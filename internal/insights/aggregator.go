// Package insights orchestrates the analysis engines into a single report.
// The four analyzers run concurrently over a shared read-only snapshot; the
// aggregator assembles their findings and the summary counts.
package insights

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"fjacquet/ledger-insights/internal/anomaly"
	"fjacquet/ledger-insights/internal/forecast"
	"fjacquet/ledger-insights/internal/logging"
	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/recommend"
	"fjacquet/ledger-insights/internal/trends"
)

// ErrNilData is returned when analysis is requested without a ledger
// snapshot.
var ErrNilData = errors.New("insights: company data is nil")

// Aggregator runs all analyzers and assembles their output.
type Aggregator struct {
	minTransactions int

	trends      *trends.Analyzer
	anomalies   *anomaly.Detector
	forecaster  *forecast.Engine
	recommender *recommend.Engine
	log         logging.Logger
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithMinTransactions overrides the data sufficiency threshold.
func WithMinTransactions(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.minTransactions = n
		}
	}
}

// WithLogger installs a logger on the aggregator.
func WithLogger(logger logging.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.log = logger
		}
	}
}

// New builds an aggregator over the given engines. Nil engines get default
// configurations.
func New(trendAnalyzer *trends.Analyzer, detector *anomaly.Detector,
	forecaster *forecast.Engine, recommender *recommend.Engine, opts ...Option) *Aggregator {

	a := &Aggregator{
		minTransactions: MinTransactions,
		trends:          trendAnalyzer,
		anomalies:       detector,
		forecaster:      forecaster,
		recommender:     recommender,
		log:             logging.GetLogger(),
	}
	if a.trends == nil {
		a.trends = trends.NewAnalyzer(trends.DefaultConfig())
	}
	if a.anomalies == nil {
		a.anomalies = anomaly.NewDetector(anomaly.DefaultConfig())
	}
	if a.forecaster == nil {
		a.forecaster = forecast.NewEngine(forecast.DefaultConfig())
	}
	if a.recommender == nil {
		a.recommender = recommend.NewEngine(recommend.DefaultConfig())
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewDefault builds an aggregator with default engines.
func NewDefault(opts ...Option) *Aggregator {
	return New(nil, nil, nil, nil, opts...)
}

// GenerateInsights runs the full analysis over the period. With too little
// data in the period it returns a result flagged insufficient, with every
// analysis list empty; errors are reserved for invalid input and
// cancellation.
func (a *Aggregator) GenerateInsights(ctx context.Context, data *models.CompanyData, period models.DateRange) (*models.InsightsData, error) {
	if data == nil {
		return nil, ErrNilData
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	result := &models.InsightsData{
		GeneratedAt: time.Now().UTC(),
		Period:      period,
	}

	sufficiency := CheckSufficiency(data, period, a.minTransactions)
	if !sufficiency.Sufficient {
		a.log.Info("Skipping analysis, not enough data",
			logging.Field{Key: logging.FieldCount, Value: sufficiency.TransactionCount},
			logging.Field{Key: logging.FieldPeriod, Value: period.String()})
		result.InsufficientDataMessage = sufficiency.Message
		result.Summarize()
		return result, nil
	}
	result.HasSufficientData = true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.RevenueTrends = a.trends.Analyze(gctx, data, period)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Anomalies = a.anomalies.Detect(gctx, data, period)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Forecast = a.forecaster.GenerateForecast(gctx, data, period)
		result.Forecasts = a.forecaster.Insights(gctx, data, period)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Recommendations = a.recommender.Generate(gctx, data, period)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Summarize()

	a.log.Info("Analysis complete",
		logging.Field{Key: logging.FieldPeriod, Value: period.String()},
		logging.Field{Key: logging.FieldInsightCount, Value: result.Summary.TotalInsights},
		logging.Field{Key: logging.FieldConfidence, Value: result.Forecast.ConfidenceScore})

	return result, nil
}

// AnalyzeTrends runs only the trend analyzer, behind the same sufficiency
// gate as the full analysis.
func (a *Aggregator) AnalyzeTrends(ctx context.Context, data *models.CompanyData, period models.DateRange) ([]models.InsightItem, error) {
	if err := a.precheck(data, period); err != nil {
		return nil, err
	}
	if !CheckSufficiency(data, period, a.minTransactions).Sufficient {
		return nil, nil
	}
	return a.trends.Analyze(ctx, data, period), nil
}

// DetectAnomalies runs only the anomaly detector.
func (a *Aggregator) DetectAnomalies(ctx context.Context, data *models.CompanyData, period models.DateRange) ([]models.InsightItem, error) {
	if err := a.precheck(data, period); err != nil {
		return nil, err
	}
	if !CheckSufficiency(data, period, a.minTransactions).Sufficient {
		return nil, nil
	}
	return a.anomalies.Detect(ctx, data, period), nil
}

// GenerateRecommendations runs only the recommendation engine.
func (a *Aggregator) GenerateRecommendations(ctx context.Context, data *models.CompanyData, period models.DateRange) ([]models.InsightItem, error) {
	if err := a.precheck(data, period); err != nil {
		return nil, err
	}
	if !CheckSufficiency(data, period, a.minTransactions).Sufficient {
		return nil, nil
	}
	return a.recommender.Generate(ctx, data, period), nil
}

// GenerateForecast runs only the business forecast. An insufficient period
// yields a low-confidence zero forecast rather than an error.
func (a *Aggregator) GenerateForecast(ctx context.Context, data *models.CompanyData, period models.DateRange) (models.ForecastData, error) {
	if err := a.precheck(data, period); err != nil {
		return models.ForecastData{ConfidenceLevel: models.ConfidenceLow}, err
	}
	if !CheckSufficiency(data, period, a.minTransactions).Sufficient {
		return models.ForecastData{ConfidenceLevel: models.ConfidenceLow}, nil
	}
	return a.forecaster.GenerateForecast(ctx, data, period), nil
}

func (a *Aggregator) precheck(data *models.CompanyData, period models.DateRange) error {
	if data == nil {
		return ErrNilData
	}
	return period.Validate()
}
