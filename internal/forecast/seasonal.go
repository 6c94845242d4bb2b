package forecast

import (
	"math"

	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/stats"
)

// decomposition is the result of removing a linear trend and a repeating
// seasonal component from a series.
type decomposition struct {
	slope       float64
	intercept   float64
	factors     []float64
	residualVar float64
	detrended   []float64
}

// decompose removes the fitted linear trend from the series, averages the
// detrended values at each position of a season of the given length, and
// measures the variance left unexplained.
func decompose(values []float64, seasonLength int) decomposition {
	n := len(values)
	slope, intercept, ok := stats.LinearRegression(values)
	if !ok {
		slope, intercept = 0, stats.Mean(values)
	}

	detrended := make([]float64, n)
	for i, v := range values {
		detrended[i] = v - (slope*float64(i) + intercept)
	}

	factors := make([]float64, seasonLength)
	counts := make([]int, seasonLength)
	for i, v := range detrended {
		pos := i % seasonLength
		factors[pos] += v
		counts[pos]++
	}
	for pos := range factors {
		if counts[pos] > 0 {
			factors[pos] /= float64(counts[pos])
		}
	}

	residuals := make([]float64, n)
	for i, v := range detrended {
		residuals[i] = v - factors[i%seasonLength]
	}

	return decomposition{
		slope:       slope,
		intercept:   intercept,
		factors:     factors,
		residualVar: stats.Variance(residuals),
		detrended:   detrended,
	}
}

// DetectSeasonalPattern tries each candidate season length against the
// series and keeps the one whose seasonal component explains the most
// variance. Returns nil when the series is too short or no candidate fits.
func (e *Engine) DetectSeasonalPattern(values []float64) *models.SeasonalPattern {
	n := len(values)
	if n < e.cfg.AmpleMonths {
		return nil
	}

	best := -1
	var bestDecomp decomposition
	for _, length := range e.cfg.SeasonCandidates {
		if length < 2 || n < length {
			continue
		}
		d := decompose(values, length)
		if best == -1 || d.residualVar < bestDecomp.residualVar {
			best = length
			bestDecomp = d
		}
	}
	if best == -1 {
		return nil
	}

	detrendedVar := stats.Variance(bestDecomp.detrended)
	strength := 0.0
	if detrendedVar > 0 {
		strength = stats.Clamp(1-bestDecomp.residualVar/detrendedVar, 0, 1)
	}

	return &models.SeasonalPattern{
		SeasonLength:     best,
		SeasonalFactors:  bestDecomp.factors,
		SeasonalStrength: strength,
		TrendDirection:   slopeDirection(bestDecomp.slope, values),
		TrendSlope:       bestDecomp.slope,
	}
}

// slopeDirection classifies a fitted slope as increasing, decreasing or
// stable relative to the magnitude of the series.
func slopeDirection(slope float64, values []float64) models.TrendDirection {
	scale := math.Abs(stats.Mean(values))
	if scale == 0 {
		scale = 1
	}
	switch {
	case slope > 0.005*scale:
		return models.TrendIncreasing
	case slope < -0.005*scale:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// seasonalForecast projects the next value as trend plus the seasonal factor
// at the next season position. It requires a detected pattern with real
// seasonal signal.
func (e *Engine) seasonalForecast(values []float64, pattern *models.SeasonalPattern) (PointForecast, error) {
	if pattern == nil || pattern.SeasonalStrength <= 0 {
		return PointForecast{}, errNoSeasonalStructure
	}

	n := len(values)
	slope, intercept, ok := stats.LinearRegression(values)
	if !ok {
		return PointForecast{}, errNoSeasonalStructure
	}

	factor := pattern.SeasonalFactors[n%pattern.SeasonLength]
	value := math.Max(0, slope*float64(n)+intercept+factor)

	spread := residualStdDev(values, slope, intercept, true)
	return PointForecast{
		Value:  value,
		Lower:  math.Max(0, value-spread),
		Upper:  value + spread,
		Method: "seasonal",
	}, nil
}
