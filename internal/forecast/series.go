package forecast

import (
	"time"

	"fjacquet/ledger-insights/internal/dateutils"
	"fjacquet/ledger-insights/internal/models"
)

// trailingMonths is the depth of the monthly history fed to the forecasters.
const trailingMonths = 12

// monthWindow returns the ordered month keys of the trailing window ending
// at the month containing end.
func monthWindow(end time.Time) []int {
	keys := make([]int, 0, trailingMonths)
	first := dateutils.StartOfMonth(end.AddDate(0, -(trailingMonths-1), 0))
	for i := 0; i < trailingMonths; i++ {
		keys = append(keys, dateutils.MonthKey(first.AddDate(0, i, 0)))
	}
	return keys
}

// trimLeadingZeros drops the empty months before the first activity so a
// young company is not penalized with a long run of zero months.
func trimLeadingZeros(series []float64) []float64 {
	for i, v := range series {
		if v != 0 {
			return series[i:]
		}
	}
	return nil
}

// MonthlyRevenueSeries buckets sale amounts by calendar month over the
// trailing year ending at end. Leading months with no activity are trimmed.
func MonthlyRevenueSeries(data *models.CompanyData, end time.Time) []float64 {
	totals := make(map[int]float64)
	for _, s := range data.Sales {
		totals[dateutils.MonthKey(s.Date)] += s.AmountFloat()
	}
	return seriesFromTotals(totals, end)
}

// MonthlyExpenseSeries buckets expense amounts by calendar month over the
// trailing year ending at end.
func MonthlyExpenseSeries(data *models.CompanyData, end time.Time) []float64 {
	totals := make(map[int]float64)
	for _, e := range data.Expenses {
		totals[dateutils.MonthKey(e.Date)] += e.AmountFloat()
	}
	return seriesFromTotals(totals, end)
}

// MonthlyNewCustomerSeries counts first-time customers per month over the
// trailing year ending at end. A customer's first sale anywhere in the
// ledger defines the acquisition month.
func MonthlyNewCustomerSeries(data *models.CompanyData, end time.Time) []float64 {
	firstSale := make(map[string]time.Time)
	for _, s := range data.Sales {
		if s.CustomerID == "" {
			continue
		}
		if prev, seen := firstSale[s.CustomerID]; !seen || s.Date.Before(prev) {
			firstSale[s.CustomerID] = s.Date
		}
	}

	totals := make(map[int]float64)
	for _, date := range firstSale {
		totals[dateutils.MonthKey(date)]++
	}
	return seriesFromTotals(totals, end)
}

func seriesFromTotals(totals map[int]float64, end time.Time) []float64 {
	keys := monthWindow(end)
	series := make([]float64, len(keys))
	for i, key := range keys {
		series[i] = totals[key]
	}
	return trimLeadingZeros(series)
}
