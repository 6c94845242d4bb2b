// Package trends detects revenue, expense, volume and sales-pattern trends
// by comparing the analysis period against its preceding period of equal
// length and against trailing history.
package trends

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/ledger-insights/internal/dateutils"
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

// Config holds the trend detection thresholds.
type Config struct {
	// TrendThresholdPercent is the minimum absolute period-over-period
	// change required before a revenue or expense trend is reported.
	// The comparison is inclusive.
	TrendThresholdPercent float64

	// VolumeThresholdPercent is the minimum absolute change in transaction
	// count required before a volume trend is reported.
	VolumeThresholdPercent float64

	// DayOfWeekMinSales is the minimum number of sales in the period before
	// day-of-week patterns are considered.
	DayOfWeekMinSales int

	// DayOfWeekRatio is the multiple of the average daily revenue a weekday
	// must exceed to be reported as a peak day.
	DayOfWeekRatio float64

	// SeasonalMinMonths is the minimum number of populated months in the
	// trailing year before seasonal peaks are considered.
	SeasonalMinMonths int

	// SeasonalRatio is the multiple of the average monthly revenue a month
	// must exceed to be reported as a peak month.
	SeasonalRatio float64
}

// DefaultConfig returns the standard trend thresholds.
func DefaultConfig() Config {
	return Config{
		TrendThresholdPercent:  15.0,
		VolumeThresholdPercent: 20.0,
		DayOfWeekMinSales:      14,
		DayOfWeekRatio:         1.30,
		SeasonalMinMonths:      6,
		SeasonalRatio:          1.25,
	}
}

// Analyzer produces trend and pattern insights from a company snapshot.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates a trend analyzer with the given thresholds.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze runs all trend and pattern checks over the analysis period and
// returns the findings. A cancelled context yields no insights.
func (a *Analyzer) Analyze(ctx context.Context, data *models.CompanyData, period models.DateRange) []models.InsightItem {
	if ctx.Err() != nil || data == nil {
		return nil
	}

	var insights []models.InsightItem
	insights = append(insights, a.revenueTrend(data, period)...)
	insights = append(insights, a.expenseTrend(data, period)...)
	insights = append(insights, a.volumeTrend(data, period)...)
	insights = append(insights, a.dayOfWeekPattern(data, period)...)
	insights = append(insights, a.seasonalPattern(data, period)...)

	log.WithFields(logrus.Fields{
		"period":        period.String(),
		"insight_count": len(insights),
	}).Debug("Trend analysis complete")

	return insights
}

// revenueTrend compares period revenue against the preceding period of equal
// length.
func (a *Analyzer) revenueTrend(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	current, _ := models.SumSales(data.SalesIn(period)).Float64()
	previous, _ := models.SumSales(data.SalesIn(period.Previous())).Float64()

	change := stats.PercentChange(previous, current)
	if math.Abs(change) < a.cfg.TrendThresholdPercent {
		return nil
	}

	var insight models.InsightItem
	if change > 0 {
		insight = models.NewInsight(models.CategoryTrend, models.SeveritySuccess,
			"Revenue is growing",
			fmt.Sprintf("Revenue of $%.2f is up %.1f%% compared to the previous period ($%.2f).",
				current, change, previous))
		insight.Recommendation = "Identify what is driving the growth and double down on it."
	} else {
		insight = models.NewInsight(models.CategoryTrend, models.SeverityWarning,
			"Revenue is declining",
			fmt.Sprintf("Revenue of $%.2f is down %.1f%% compared to the previous period ($%.2f).",
				current, math.Abs(change), previous))
		insight.Recommendation = "Review pricing, pipeline and customer retention for the period."
	}
	insight.MetricValue = current
	insight.PercentChange = change
	return []models.InsightItem{insight}
}

// expenseTrend compares period expenses against the preceding period. Rising
// expenses warn, falling expenses are positive.
func (a *Analyzer) expenseTrend(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	current, _ := models.SumExpenses(data.ExpensesIn(period)).Float64()
	previous, _ := models.SumExpenses(data.ExpensesIn(period.Previous())).Float64()

	change := stats.PercentChange(previous, current)
	if math.Abs(change) < a.cfg.TrendThresholdPercent {
		return nil
	}

	var insight models.InsightItem
	if change > 0 {
		insight = models.NewInsight(models.CategoryTrend, models.SeverityWarning,
			"Expenses are rising",
			fmt.Sprintf("Expenses of $%.2f are up %.1f%% compared to the previous period ($%.2f).",
				current, change, previous))
		insight.Recommendation = "Review the largest expense categories for one-off or avoidable costs."
	} else {
		insight = models.NewInsight(models.CategoryTrend, models.SeveritySuccess,
			"Expenses are falling",
			fmt.Sprintf("Expenses of $%.2f are down %.1f%% compared to the previous period ($%.2f).",
				current, math.Abs(change), previous))
	}
	insight.MetricValue = current
	insight.PercentChange = change
	return []models.InsightItem{insight}
}

// volumeTrend compares the number of sales in the period against the
// preceding period.
func (a *Analyzer) volumeTrend(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	current := float64(len(data.SalesIn(period)))
	previous := float64(len(data.SalesIn(period.Previous())))

	change := stats.PercentChange(previous, current)
	if math.Abs(change) < a.cfg.VolumeThresholdPercent {
		return nil
	}

	direction := "up"
	severity := models.SeveritySuccess
	if change < 0 {
		direction = "down"
		severity = models.SeverityWarning
	}
	insight := models.NewInsight(models.CategoryTrend, severity,
		"Sales volume shift",
		fmt.Sprintf("Transaction count is %s %.1f%% (%d vs %d in the previous period).",
			direction, math.Abs(change), int(current), int(previous)))
	insight.MetricValue = current
	insight.PercentChange = change
	return []models.InsightItem{insight}
}

// dayOfWeekPattern looks for a weekday whose revenue stands well above the
// weekday average within the period.
func (a *Analyzer) dayOfWeekPattern(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	sales := data.SalesIn(period)
	if len(sales) < a.cfg.DayOfWeekMinSales {
		return nil
	}

	byDay := stats.GroupBy(sales, func(s models.Sale) time.Weekday {
		return s.Date.Weekday()
	})

	totals := make(map[time.Weekday]float64, len(byDay))
	var all []float64
	for day, daySales := range byDay {
		t := stats.SumBy(daySales, models.Sale.AmountFloat)
		totals[day] = t
		all = append(all, t)
	}
	if len(all) < 2 {
		return nil
	}

	avg := stats.Mean(all)
	if avg <= 0 {
		return nil
	}

	days := make([]time.Weekday, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	// Scanning sorted keys keeps the reported peak stable on exact ties.
	var best time.Weekday
	bestTotal := math.Inf(-1)
	for _, day := range days {
		if t := totals[day]; t > bestTotal {
			best, bestTotal = day, t
		}
	}
	if bestTotal <= a.cfg.DayOfWeekRatio*avg {
		return nil
	}

	abovePct := (bestTotal/avg - 1) * 100
	insight := models.NewInsight(models.CategoryPattern, models.SeverityInfo,
		fmt.Sprintf("%ss are your strongest sales day", best),
		fmt.Sprintf("%s revenue of $%.2f runs %.0f%% above the weekday average of $%.2f.",
			best, bestTotal, abovePct, avg))
	insight.Recommendation = fmt.Sprintf("Schedule promotions and staffing around %ss.", best)
	insight.MetricValue = bestTotal
	insight.PercentChange = abovePct
	return []models.InsightItem{insight}
}

// seasonalPattern looks for a calendar month whose revenue stands well above
// the monthly average across the trailing twelve months ending at the period.
func (a *Analyzer) seasonalPattern(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	window := models.DateRange{
		Start: dateutils.StartOfMonth(period.End.AddDate(0, -11, 0)),
		End:   period.End,
	}
	sales := data.SalesIn(window)
	if len(sales) == 0 {
		return nil
	}

	byMonth := stats.GroupBy(sales, func(s models.Sale) int {
		return dateutils.MonthKey(s.Date)
	})
	if len(byMonth) < a.cfg.SeasonalMinMonths {
		return nil
	}

	totals := make(map[int]float64, len(byMonth))
	var all []float64
	for key, monthSales := range byMonth {
		t := stats.SumBy(monthSales, models.Sale.AmountFloat)
		totals[key] = t
		all = append(all, t)
	}

	avg := stats.Mean(all)
	if avg <= 0 {
		return nil
	}

	keys := make([]int, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	// Scanning sorted keys keeps the reported peak stable on exact ties.
	bestKey := 0
	bestTotal := math.Inf(-1)
	for _, key := range keys {
		if t := totals[key]; t > bestTotal {
			bestKey, bestTotal = key, t
		}
	}
	if bestTotal <= a.cfg.SeasonalRatio*avg {
		return nil
	}

	month := time.Month(bestKey % 100)
	abovePct := (bestTotal/avg - 1) * 100
	insight := models.NewInsight(models.CategoryPattern, models.SeverityInfo,
		fmt.Sprintf("%s is a peak revenue month", month),
		fmt.Sprintf("%s revenue of $%.2f runs %.0f%% above the monthly average of $%.2f over the trailing year.",
			month, bestTotal, abovePct, avg))
	insight.Recommendation = fmt.Sprintf("Build inventory and marketing plans ahead of %s.", month)
	insight.MetricValue = bestTotal
	insight.PercentChange = abovePct
	return []models.InsightItem{insight}
}
