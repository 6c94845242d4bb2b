// Package forecast projects next-period revenue, expenses, profit and new
// customers from monthly ledger history. Forecasting is deterministic: the
// same series always yields the same projection and confidence score.
package forecast

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/stats"
)

var log = logrus.New()

// SetLogger sets the logger used by this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// errNoSeasonalStructure reports that a series carries no usable seasonal
// signal for the seasonal forecaster.
var errNoSeasonalStructure = errors.New("series has no usable seasonal structure")

// Config holds the forecasting parameters.
type Config struct {
	// SmoothingAlpha is the exponential smoothing factor.
	SmoothingAlpha float64

	// RegressionWeight is the weight of the regression projection in the
	// combined method once the series spans AmpleMonths; the smoothed level
	// takes the remainder. Below AmpleMonths the weights flip.
	RegressionWeight float64

	// AmpleMonths is the series length at which regression becomes the
	// dominant method.
	AmpleMonths int

	// EnsembleMinPoints is the series length required before the seasonal
	// forecaster joins the ensemble.
	EnsembleMinPoints int

	// EnsembleSeasonalWeight is the seasonal forecaster's ensemble weight
	// for long series; shorter ensemble-eligible series weight both methods
	// equally.
	EnsembleSeasonalWeight float64

	// EnsembleLongSeries is the series length at which the seasonal
	// forecaster takes its full weight.
	EnsembleLongSeries int

	// SeasonCandidates are the candidate season lengths, in months, tried
	// during decomposition.
	SeasonCandidates []int

	// DepletionDays is the stock-cover threshold, in days, below which a
	// product is flagged as at risk of running out.
	DepletionDays float64

	// DepletionWindowDays is the trailing window used to measure sales
	// velocity for depletion checks.
	DepletionWindowDays int
}

// DefaultConfig returns the standard forecasting parameters.
func DefaultConfig() Config {
	return Config{
		SmoothingAlpha:         0.3,
		RegressionWeight:       0.6,
		AmpleMonths:            6,
		EnsembleMinPoints:      24,
		EnsembleSeasonalWeight: 0.6,
		EnsembleLongSeries:     36,
		SeasonCandidates:       []int{12, 6, 4, 3},
		DepletionDays:          14,
		DepletionWindowDays:    30,
	}
}

// Engine produces forecasts from monthly series.
type Engine struct {
	cfg Config

	// accuracy is the historical forecast accuracy in [0,1] fed back from
	// past forecast evaluations, if any.
	accuracy    float64
	hasAccuracy bool
}

// NewEngine creates a forecast engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	if len(cfg.SeasonCandidates) == 0 {
		cfg.SeasonCandidates = DefaultConfig().SeasonCandidates
	}
	return &Engine{cfg: cfg}
}

// SetAccuracy records the engine's historical forecast accuracy in [0,1].
// When set, it contributes a bonus to future confidence scores.
func (e *Engine) SetAccuracy(accuracy float64) {
	e.accuracy = stats.Clamp(accuracy, 0, 1)
	e.hasAccuracy = true
}

// PointForecast is a single-series next-period projection.
type PointForecast struct {
	Value      float64
	Lower      float64
	Upper      float64
	Method     string
	Confidence float64
}

// combinedForecast blends a linear regression projection with an
// exponentially smoothed level. Forecasts never go negative; a series too
// short or too flat for regression falls back to its last value.
func (e *Engine) combinedForecast(values []float64) PointForecast {
	n := len(values)
	if n == 0 {
		return PointForecast{Method: "none"}
	}
	last := values[n-1]
	if n < 2 {
		return PointForecast{Value: last, Lower: last, Upper: last, Method: "last-value"}
	}

	regression := last
	slope, intercept, ok := stats.LinearRegression(values)
	if ok {
		regression = math.Max(0, slope*float64(n)+intercept)
	}
	smoothed := stats.ExponentialSmooth(values, e.cfg.SmoothingAlpha)

	wReg := e.cfg.RegressionWeight
	if n < e.cfg.AmpleMonths {
		wReg = 1 - e.cfg.RegressionWeight
	}
	value := math.Max(0, wReg*regression+(1-wReg)*smoothed)

	spread := residualStdDev(values, slope, intercept, ok)
	return PointForecast{
		Value:  value,
		Lower:  math.Max(0, value-spread),
		Upper:  value + spread,
		Method: "regression+smoothing",
	}
}

// residualStdDev measures the spread of the series around its fitted line,
// falling back to the plain standard deviation when no line was fitted.
func residualStdDev(values []float64, slope, intercept float64, fitted bool) float64 {
	if !fitted {
		return stats.StdDev(values)
	}
	residuals := make([]float64, len(values))
	for i, v := range values {
		residuals[i] = v - (slope*float64(i) + intercept)
	}
	return stats.StdDev(residuals)
}

// ForecastSeries projects the next value of a monthly series. Long series
// run an ensemble of the combined and seasonal forecasters; the seasonal
// member failing degrades the ensemble to the combined method with reduced
// confidence rather than failing the forecast.
func (e *Engine) ForecastSeries(values []float64) (PointForecast, *models.SeasonalPattern) {
	// Fewer than two points carries no trend information; project the last
	// known value with zero confidence.
	if len(values) < 2 {
		return e.combinedForecast(values), nil
	}

	pattern := e.DetectSeasonalPattern(values)
	base := e.combinedForecast(values)

	n := len(values)
	penalty := 0.0
	bonus := 0.0

	if n >= e.cfg.EnsembleMinPoints {
		seasonal, err := e.seasonalForecast(values, pattern)
		if err != nil {
			log.WithError(err).WithField("data_points", n).
				Debug("Seasonal forecaster unavailable, using combined method only")
			penalty = 10
		} else {
			wSeason := e.cfg.EnsembleSeasonalWeight
			if n < e.cfg.EnsembleLongSeries {
				wSeason = 0.5
			}
			bonus = 10 * forecastAgreement(seasonal.Value, base.Value)
			base = PointForecast{
				Value:  math.Max(0, wSeason*seasonal.Value+(1-wSeason)*base.Value),
				Lower:  math.Min(base.Lower, seasonal.Lower),
				Upper:  math.Max(base.Upper, seasonal.Upper),
				Method: "ensemble",
			}
		}
	}

	base.Confidence = stats.Clamp(e.confidenceScore(values, pattern)+bonus-penalty, 0, 100)
	return base, pattern
}

// forecastAgreement maps the relative difference between two projections to
// [0,1], where 1 means the methods agree exactly.
func forecastAgreement(a, b float64) float64 {
	scale := (math.Abs(a) + math.Abs(b)) / 2
	if scale == 0 {
		return 1
	}
	return stats.Clamp(1-math.Abs(a-b)/scale, 0, 1)
}

// confidenceScore rates a forecast from 0 to 100 across four components:
// data quantity, series stability, seasonal structure and historical
// accuracy. More months of history never lower the score.
func (e *Engine) confidenceScore(values []float64, pattern *models.SeasonalPattern) float64 {
	n := len(values)

	var quantity float64
	switch {
	case n >= 24:
		quantity = 40
	case n >= 12:
		quantity = 30
	case n >= e.cfg.AmpleMonths:
		quantity = 20
	case n >= 3:
		quantity = 12
	default:
		quantity = 5
	}

	var stability float64
	cv := stats.CoefficientOfVariation(values)
	switch {
	case cv < 0.1:
		stability = 25
	case cv < 0.2:
		stability = 20
	case cv < 0.35:
		stability = 15
	case cv < 0.5:
		stability = 10
	default:
		stability = 5
	}

	var seasonal float64
	switch {
	case pattern != nil && pattern.SeasonalStrength > 0.1:
		seasonal = math.Min(20, 10+10*pattern.SeasonalStrength)
	case n >= e.cfg.AmpleMonths:
		seasonal = 10
	}

	var history float64
	if e.hasAccuracy {
		history = 20 * e.accuracy
	}

	return stats.Clamp(quantity+stability+seasonal+history, 0, 100)
}
