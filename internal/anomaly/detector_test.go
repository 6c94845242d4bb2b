package anomaly

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/ledger-insights/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(date time.Time, amount float64) models.Sale {
	return models.Sale{Date: date, AmountUSD: decimal.NewFromFloat(amount)}
}

func expense(date time.Time, amount float64) models.Expense {
	return models.Expense{Date: date, AmountUSD: decimal.NewFromFloat(amount)}
}

func findByTitle(items []models.InsightItem, title string) (models.InsightItem, bool) {
	for _, it := range items {
		if it.Title == title {
			return it, true
		}
	}
	return models.InsightItem{}, false
}

// weeklyExpenses lays down one expense per week for n weeks ending at end.
func weeklyExpenses(end time.Time, n int, amount float64) []models.Expense {
	var out []models.Expense
	for i := 1; i <= n; i++ {
		out = append(out, expense(end.AddDate(0, 0, -7*i), amount))
	}
	return out
}

func TestExpenseSpikeDetected(t *testing.T) {
	d := NewDetector(DefaultConfig())
	end := day(2024, time.June, 28) // Friday
	period := models.NewDateRange(day(2024, time.June, 1), end)

	// Ten baseline weeks at $100 with slight variation, then a $1000 week.
	expenses := weeklyExpenses(end, 10, 100.0)
	expenses[0].AmountUSD = decimal.NewFromFloat(110.0)
	expenses[1].AmountUSD = decimal.NewFromFloat(90.0)
	expenses = append(expenses, expense(end, 1000.0))

	data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, nil)
	insights := d.Detect(context.Background(), data, period)
	insight, ok := findByTitle(insights, "Unusual expense spike this week")
	require.True(t, ok)
	assert.Equal(t, models.SeverityWarning, insight.Severity)
	assert.Equal(t, models.CategoryAnomaly, insight.Category)
	assert.InDelta(t, 1000.0, insight.MetricValue, 0.01)
}

func TestExpenseSpikeSuppressedOnZeroVariance(t *testing.T) {
	d := NewDetector(DefaultConfig())
	end := day(2024, time.June, 28)
	period := models.NewDateRange(day(2024, time.June, 1), end)

	// Identical baseline weeks give zero stddev; detection must stay quiet
	// even though the current week is higher.
	expenses := weeklyExpenses(end, 10, 100.0)
	expenses = append(expenses, expense(end, 1000.0))

	data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, nil)
	_, ok := findByTitle(d.Detect(context.Background(), data, period), "Unusual expense spike this week")
	assert.False(t, ok)
}

func TestExpenseSpikeNeedsFourBaselineWeeks(t *testing.T) {
	d := NewDetector(DefaultConfig())
	end := day(2024, time.June, 28)
	period := models.NewDateRange(day(2024, time.June, 1), end)

	expenses := weeklyExpenses(end, 3, 100.0)
	expenses = append(expenses, expense(end, 1000.0))

	data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, nil)
	_, ok := findByTitle(d.Detect(context.Background(), data, period), "Unusual expense spike this week")
	assert.False(t, ok)
}

func TestExpenseSpikeBoundary(t *testing.T) {
	d := NewDetector(DefaultConfig())
	end := day(2024, time.June, 28) // Friday
	period := models.NewDateRange(day(2024, time.June, 1), end)

	// Twelve baseline weeks alternating 900/1100 give mean 1000 and a
	// standard deviation of exactly 100, so the current week sits just
	// either side of the two-sigma line.
	tests := []struct {
		name     string
		current  float64
		expected bool
	}{
		{"just above two sigma", 1201.0, true},
		{"just below two sigma", 1199.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := weeklyExpenses(end, 12, 900.0)
			for i := range expenses {
				if i%2 == 0 {
					expenses[i].AmountUSD = decimal.NewFromFloat(1100.0)
				}
			}
			expenses = append(expenses, expense(end, tt.current))

			data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, nil)
			_, ok := findByTitle(d.Detect(context.Background(), data, period), "Unusual expense spike this week")
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestRevenueDropReportsFirstOnlyAsCritical(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 14))

	// Daily baseline over the preceding six weeks with mild variation,
	// then two near-zero days inside the period.
	var sales []models.Sale
	for i := 1; i <= 42; i++ {
		amount := 100.0
		if i%2 == 0 {
			amount = 120.0
		}
		sales = append(sales, sale(day(2024, time.June, 1).AddDate(0, 0, -i), amount))
	}
	sales = append(sales,
		sale(day(2024, time.June, 3), 1.0),
		sale(day(2024, time.June, 10), 1.0),
	)

	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, nil, nil)
	insights := d.Detect(context.Background(), data, period)

	var drops []models.InsightItem
	for _, it := range insights {
		if it.Title == "Sharp revenue drop" {
			drops = append(drops, it)
		}
	}
	require.Len(t, drops, 1)
	assert.Equal(t, models.SeverityCritical, drops[0].Severity)
}

func TestReturnRateJump(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

	products := []models.Product{{ID: "p1", Name: "Blue Widget"}}
	var sales []models.Sale
	var returns []models.Return

	// History: 20 sales, 1 return (5%).
	for i := 0; i < 20; i++ {
		sales = append(sales, sale(day(2024, time.March, 1).AddDate(0, 0, i), 100.0))
	}
	returns = append(returns, models.Return{Date: day(2024, time.March, 5), ProductID: "p1"})

	// Current: 10 sales, 2 returns (20%).
	for i := 0; i < 10; i++ {
		sales = append(sales, sale(day(2024, time.June, 2).AddDate(0, 0, i), 100.0))
	}
	returns = append(returns,
		models.Return{Date: day(2024, time.June, 5), ProductID: "p1"},
		models.Return{Date: day(2024, time.June, 8), ProductID: "p1"},
	)

	data := models.NewCompanyData(sales, nil, returns, nil, nil, products, nil, nil)
	insight, ok := findByTitle(d.Detect(context.Background(), data, period), "Return rate is climbing")
	require.True(t, ok)
	assert.Equal(t, models.SeverityWarning, insight.Severity)
	assert.Contains(t, insight.Recommendation, "Blue Widget")
	assert.InDelta(t, 15.0, insight.PercentChange, 0.01)
}

func TestReturnRateNeedsSalesBothSides(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

	// Plenty of current sales but only 5 historical ones.
	var sales []models.Sale
	for i := 0; i < 5; i++ {
		sales = append(sales, sale(day(2024, time.March, 1).AddDate(0, 0, i), 100.0))
	}
	for i := 0; i < 10; i++ {
		sales = append(sales, sale(day(2024, time.June, 2).AddDate(0, 0, i), 100.0))
	}
	returns := []models.Return{
		{Date: day(2024, time.June, 5), ProductID: "p1"},
		{Date: day(2024, time.June, 8), ProductID: "p1"},
	}

	data := models.NewCompanyData(sales, nil, returns, nil, nil, nil, nil, nil)
	_, ok := findByTitle(d.Detect(context.Background(), data, period), "Return rate is climbing")
	assert.False(t, ok)
}

func TestLargeTransactionBoundary(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDetector(cfg)
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

	// Twenty sales alternating 900/1100 give mean 1000; the candidate sits
	// either side of the three-sigma line once it is included in the pool.
	tests := []struct {
		name      string
		candidate float64
		expected  bool
	}{
		{"above three sigma", 3500.0, true},
		{"below three sigma", 1300.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := []models.Customer{{ID: "c1", Name: "Acme Corp"}}
			var sales []models.Sale
			for i := 0; i < 20; i++ {
				v := 900.0
				if i%2 == 0 {
					v = 1100.0
				}
				sales = append(sales, sale(day(2024, time.June, 1).AddDate(0, 0, i%28), v))
			}
			big := sale(day(2024, time.June, 20), tt.candidate)
			big.CustomerID = "c1"
			sales = append(sales, big)

			data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, customers, nil)
			insight, ok := findByTitle(d.Detect(context.Background(), data, period), "Unusually large sale")
			assert.Equal(t, tt.expected, ok)
			if ok {
				assert.Equal(t, models.SeverityInfo, insight.Severity)
				assert.Contains(t, insight.Description, "Acme Corp")
			}
		})
	}
}

func TestLargeTransactionReportsOnlyLargestSale(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

	// Two outliers, but only the single largest sale of the period is a
	// candidate.
	var sales []models.Sale
	for i := 0; i < 20; i++ {
		sales = append(sales, sale(day(2024, time.June, 1).AddDate(0, 0, i%28), 100.0))
	}
	sales = append(sales, sale(day(2024, time.June, 25), 60000.0))
	sales = append(sales, sale(day(2024, time.June, 26), 100000.0))

	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, nil, nil)
	var matches []models.InsightItem
	for _, it := range d.Detect(context.Background(), data, period) {
		if it.Title == "Unusually large sale" {
			matches = append(matches, it)
		}
	}

	require.Len(t, matches, 1)
	assert.Equal(t, 100000.0, matches[0].MetricValue)
	assert.Contains(t, matches[0].Description, "2024-06-26")
}

func TestLargeTransactionNeedsFiveSales(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

	sales := []models.Sale{
		sale(day(2024, time.June, 2), 100.0),
		sale(day(2024, time.June, 3), 100.0),
		sale(day(2024, time.June, 4), 100.0),
		sale(day(2024, time.June, 20), 10000.0),
	}
	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, nil, nil)
	_, ok := findByTitle(d.Detect(context.Background(), data, period), "Unusually large sale")
	assert.False(t, ok)
}

func TestDetectCancelledContext(t *testing.T) {
	d := NewDetector(DefaultConfig())
	period := models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))
	data := models.NewCompanyData(nil, nil, nil, nil, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, d.Detect(ctx, data, period))
}
