// Package anomaly flags statistically unusual activity in the ledger using
// z-scores against trailing baselines. Detection is suppressed wherever the
// baseline is too small or has zero variance.
package anomaly

import (
	"context"
	"fmt"
	"sort"

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

// Config holds the anomaly detection thresholds.
type Config struct {
	// ExpenseSpikeZ is the z-score above which the current week's expense
	// total counts as a spike.
	ExpenseSpikeZ float64

	// ExpenseBaselineWeeks is the size of the trailing weekly expense
	// baseline.
	ExpenseBaselineWeeks int

	// ExpenseMinBaselineWeeks is the minimum number of populated baseline
	// weeks required before spike detection runs.
	ExpenseMinBaselineWeeks int

	// RevenueDropZ is the z-score below which a revenue bucket counts as a
	// drop. Negative.
	RevenueDropZ float64

	// RevenueMinBaselinePoints is the minimum number of baseline buckets
	// required before drop detection runs.
	RevenueMinBaselinePoints int

	// ReturnRateDeltaPoints is the minimum increase, in percentage points,
	// of the current return rate over the historical rate.
	ReturnRateDeltaPoints float64

	// ReturnRateMinSales is the minimum sale count required in both the
	// current period and the historical window.
	ReturnRateMinSales int

	// ReturnRateHistoryMonths is the length of the historical return-rate
	// window preceding the period.
	ReturnRateHistoryMonths int

	// LargeTransactionZ is the z-score above which a single sale counts as
	// unusually large.
	LargeTransactionZ float64

	// LargeTransactionMinSales is the minimum number of sales in the period
	// before large-transaction detection runs.
	LargeTransactionMinSales int
}

// DefaultConfig returns the standard anomaly thresholds.
func DefaultConfig() Config {
	return Config{
		ExpenseSpikeZ:            2.0,
		ExpenseBaselineWeeks:     12,
		ExpenseMinBaselineWeeks:  4,
		RevenueDropZ:             -2.0,
		RevenueMinBaselinePoints: 5,
		ReturnRateDeltaPoints:    3.0,
		ReturnRateMinSales:       10,
		ReturnRateHistoryMonths:  6,
		LargeTransactionZ:        3.0,
		LargeTransactionMinSales: 5,
	}
}

// Detector produces anomaly insights from a company snapshot.
type Detector struct {
	cfg Config
}

// NewDetector creates an anomaly detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs all anomaly checks over the analysis period and returns the
// findings. A cancelled context yields no insights.
func (d *Detector) Detect(ctx context.Context, data *models.CompanyData, period models.DateRange) []models.InsightItem {
	if ctx.Err() != nil || data == nil {
		return nil
	}

	var insights []models.InsightItem
	insights = append(insights, d.expenseSpike(data, period)...)
	insights = append(insights, d.revenueDrop(data, period)...)
	insights = append(insights, d.returnRateJump(data, period)...)
	insights = append(insights, d.largeTransaction(data, period)...)

	log.WithFields(logrus.Fields{
		"period":        period.String(),
		"insight_count": len(insights),
	}).Debug("Anomaly detection complete")

	return insights
}

// expenseSpike compares the expense total of the week containing the period
// end against the trailing weekly baseline.
func (d *Detector) expenseSpike(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	window := models.DateRange{
		Start: period.End.AddDate(0, 0, -7*d.cfg.ExpenseBaselineWeeks),
		End:   period.End,
	}
	expenses := data.ExpensesIn(window)
	if len(expenses) == 0 {
		return nil
	}

	byWeek := stats.GroupBy(expenses, func(e models.Expense) int {
		return dateutils.WeekKey(e.Date)
	})

	currentKey := dateutils.WeekKey(period.End)
	current := stats.SumBy(byWeek[currentKey], models.Expense.AmountFloat)

	var baseline []float64
	for key, weekExpenses := range byWeek {
		if key == currentKey {
			continue
		}
		baseline = append(baseline, stats.SumBy(weekExpenses, models.Expense.AmountFloat))
	}
	if len(baseline) < d.cfg.ExpenseMinBaselineWeeks {
		return nil
	}

	mean := stats.Mean(baseline)
	z, ok := stats.ZScore(current, mean, stats.StdDev(baseline))
	if !ok || z <= d.cfg.ExpenseSpikeZ {
		return nil
	}

	log.WithFields(logrus.Fields{"z_score": z, "period": period.String()}).
		Debug("Expense spike detected")

	insight := models.NewInsight(models.CategoryAnomaly, models.SeverityWarning,
		"Unusual expense spike this week",
		fmt.Sprintf("This week's expenses of $%.2f are %.1f standard deviations above the trailing weekly average of $%.2f.",
			current, z, mean))
	insight.Recommendation = "Verify the week's largest expenses are expected and correctly recorded."
	insight.MetricValue = current
	insight.PercentChange = stats.PercentChange(mean, current)
	return []models.InsightItem{insight}
}

// bucket is one time slice of revenue, ordered by key.
type bucket struct {
	key   string
	total float64
}

// revenueBuckets groups sale amounts by ISO week or by day and returns the
// totals in chronological order.
func revenueBuckets(sales []models.Sale, weekly bool) []bucket {
	byKey := stats.GroupBy(sales, func(s models.Sale) string {
		if weekly {
			return fmt.Sprintf("%06d", dateutils.WeekKey(s.Date))
		}
		return dateutils.DayKey(s.Date)
	})
	buckets := make([]bucket, 0, len(byKey))
	for key, ss := range byKey {
		buckets = append(buckets, bucket{key: key, total: stats.SumBy(ss, models.Sale.AmountFloat)})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })
	return buckets
}

// revenueDrop scans the period's revenue buckets against a baseline built
// from the three preceding periods of equal length. Periods longer than 30
// days bucket weekly, shorter ones daily. Only the first drop is reported.
func (d *Detector) revenueDrop(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	weekly := period.Days() > 30

	baselineEnd := period.Start.AddDate(0, 0, -1)
	baselineStart := period.Start.AddDate(0, 0, -3*period.Days())
	baseline := revenueBuckets(data.SalesIn(models.DateRange{Start: baselineStart, End: baselineEnd}), weekly)
	if len(baseline) < d.cfg.RevenueMinBaselinePoints {
		return nil
	}

	totals := make([]float64, len(baseline))
	for i, b := range baseline {
		totals[i] = b.total
	}
	mean := stats.Mean(totals)
	stddev := stats.StdDev(totals)

	for _, b := range revenueBuckets(data.SalesIn(period), weekly) {
		z, ok := stats.ZScore(b.total, mean, stddev)
		if !ok || z >= d.cfg.RevenueDropZ {
			continue
		}

		unit := "day"
		if weekly {
			unit = "week"
		}
		insight := models.NewInsight(models.CategoryAnomaly, models.SeverityCritical,
			"Sharp revenue drop",
			fmt.Sprintf("Revenue of $%.2f in one %s sits %.1f standard deviations below the historical average of $%.2f.",
				b.total, unit, -z, mean))
		insight.Recommendation = "Check for lost customers, fulfilment problems or missing ledger entries."
		insight.MetricValue = b.total
		insight.PercentChange = stats.PercentChange(mean, b.total)
		return []models.InsightItem{insight}
	}
	return nil
}

// returnRateJump compares the period's return rate, measured by count,
// against the trailing historical rate.
func (d *Detector) returnRateJump(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	currentSales := data.SalesIn(period)
	if len(currentSales) < d.cfg.ReturnRateMinSales {
		return nil
	}

	history := models.DateRange{
		Start: period.Start.AddDate(0, -d.cfg.ReturnRateHistoryMonths, 0),
		End:   period.Start.AddDate(0, 0, -1),
	}
	historySales := data.SalesIn(history)
	if len(historySales) < d.cfg.ReturnRateMinSales {
		return nil
	}

	currentRate := float64(len(data.ReturnsIn(period))) / float64(len(currentSales)) * 100
	historyRate := float64(len(data.ReturnsIn(history))) / float64(len(historySales)) * 100
	if currentRate-historyRate < d.cfg.ReturnRateDeltaPoints {
		return nil
	}

	insight := models.NewInsight(models.CategoryAnomaly, models.SeverityWarning,
		"Return rate is climbing",
		fmt.Sprintf("The return rate of %.1f%% is up %.1f points from the historical %.1f%%.",
			currentRate, currentRate-historyRate, historyRate))
	insight.MetricValue = currentRate
	insight.PercentChange = currentRate - historyRate

	if name, ok := mostReturnedProduct(data, period); ok {
		insight.Recommendation = fmt.Sprintf("Inspect %s for quality or description issues; it is the most returned product.", name)
	} else {
		insight.Recommendation = "Review recent returns for a common product or cause."
	}
	return []models.InsightItem{insight}
}

// mostReturnedProduct resolves the name of the product with the most returns
// in the period. Unresolvable references fall back to the raw product ID;
// returns without a product reference are skipped.
func mostReturnedProduct(data *models.CompanyData, period models.DateRange) (string, bool) {
	counts := make(map[string]int)
	for _, ret := range data.ReturnsIn(period) {
		if ret.ProductID != "" {
			counts[ret.ProductID]++
		}
	}

	bestID := ""
	bestCount := 0
	for id, n := range counts {
		if n > bestCount || (n == bestCount && id < bestID) {
			bestID, bestCount = id, n
		}
	}
	if bestID == "" {
		return "", false
	}
	if p, ok := data.Product(bestID); ok {
		return p.Name, true
	}
	return bestID, true
}

// largeTransaction flags single sales far above the period's typical sale
// size. Informational; a big sale is usually good news worth noticing.
func (d *Detector) largeTransaction(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	sales := data.SalesIn(period)
	if len(sales) < d.cfg.LargeTransactionMinSales {
		return nil
	}

	amounts := make([]float64, len(sales))
	for i, s := range sales {
		amounts[i] = s.AmountFloat()
	}
	mean := stats.Mean(amounts)
	stddev := stats.StdDev(amounts)

	// Only the single largest sale of the period is a candidate.
	largest := sales[0]
	for _, s := range sales[1:] {
		if s.AmountFloat() > largest.AmountFloat() {
			largest = s
		}
	}

	z, ok := stats.ZScore(largest.AmountFloat(), mean, stddev)
	if !ok || z <= d.cfg.LargeTransactionZ {
		return nil
	}

	who := "a customer"
	if c, found := data.Customer(largest.CustomerID); found {
		who = c.Name
	}
	insight := models.NewInsight(models.CategoryAnomaly, models.SeverityInfo,
		"Unusually large sale",
		fmt.Sprintf("A sale of $%.2f to %s on %s is well above the period average of $%.2f.",
			largest.AmountFloat(), who, dateutils.ToISODate(largest.Date), mean))
	insight.Recommendation = "Consider a follow-up; large buyers are repeat-business candidates."
	insight.MetricValue = largest.AmountFloat()
	return []models.InsightItem{insight}
}
