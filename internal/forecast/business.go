package forecast

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/stats"
)

// GenerateForecast projects next-month revenue, expenses, profit and new
// customers from the trailing year of ledger history ending at the analysis
// period. The confidence assessment follows the revenue series, the headline
// number of the forecast.
func (e *Engine) GenerateForecast(ctx context.Context, data *models.CompanyData, period models.DateRange) models.ForecastData {
	if ctx.Err() != nil || data == nil {
		return models.ForecastData{ConfidenceLevel: models.ConfidenceLow}
	}

	revenue := MonthlyRevenueSeries(data, period.End)
	expenses := MonthlyExpenseSeries(data, period.End)
	customers := MonthlyNewCustomerSeries(data, period.End)

	revForecast, _ := e.ForecastSeries(revenue)
	expForecast, _ := e.ForecastSeries(expenses)
	custForecast, _ := e.ForecastSeries(customers)

	fd := models.ForecastData{
		ForecastedRevenue:    revForecast.Value,
		ForecastedExpenses:   expForecast.Value,
		ForecastedProfit:     revForecast.Value - expForecast.Value,
		ExpectedNewCustomers: math.Round(custForecast.Value),
		ConfidenceScore:      revForecast.Confidence,
		ConfidenceLevel:      models.ConfidenceLevelForScore(revForecast.Confidence),
		DataMonthsUsed:       len(revenue),
	}

	if len(revenue) > 0 {
		fd.RevenueGrowthPercent = stats.PercentChange(revenue[len(revenue)-1], fd.ForecastedRevenue)
	}
	if len(expenses) > 0 {
		fd.ExpenseGrowthPercent = stats.PercentChange(expenses[len(expenses)-1], fd.ForecastedExpenses)
	}
	if len(revenue) > 0 && len(expenses) > 0 {
		lastProfit := revenue[len(revenue)-1] - expenses[len(expenses)-1]
		fd.ProfitGrowthPercent = stats.PercentChange(lastProfit, fd.ForecastedProfit)
	}
	if len(customers) > 0 {
		fd.CustomerGrowthPercent = stats.PercentChange(customers[len(customers)-1], fd.ExpectedNewCustomers)
	}

	log.WithFields(logrus.Fields{
		"months":     fd.DataMonthsUsed,
		"confidence": fd.ConfidenceScore,
		"method":     revForecast.Method,
	}).Debug("Business forecast generated")

	return fd
}

// Insights renders the business forecast as insight items and appends
// inventory depletion warnings.
func (e *Engine) Insights(ctx context.Context, data *models.CompanyData, period models.DateRange) []models.InsightItem {
	if ctx.Err() != nil || data == nil {
		return nil
	}

	fd := e.GenerateForecast(ctx, data, period)

	var insights []models.InsightItem
	if fd.DataMonthsUsed >= 2 {
		insights = append(insights, revenueOutlook(fd), profitOutlook(fd))
	}
	insights = append(insights, e.depletionRisks(data, period)...)
	return insights
}

func revenueOutlook(fd models.ForecastData) models.InsightItem {
	severity := models.SeverityInfo
	direction := "hold steady"
	switch {
	case fd.RevenueGrowthPercent >= 5:
		severity = models.SeveritySuccess
		direction = fmt.Sprintf("grow %.1f%%", fd.RevenueGrowthPercent)
	case fd.RevenueGrowthPercent <= -5:
		severity = models.SeverityWarning
		direction = fmt.Sprintf("fall %.1f%%", math.Abs(fd.RevenueGrowthPercent))
	}

	insight := models.NewInsight(models.CategoryForecast, severity,
		"Next month revenue outlook",
		fmt.Sprintf("Revenue is projected at $%.2f next month, expected to %s (%s confidence).",
			fd.ForecastedRevenue, direction, strings.ToLower(string(fd.ConfidenceLevel))))
	insight.MetricValue = fd.ForecastedRevenue
	insight.PercentChange = fd.RevenueGrowthPercent
	return insight
}

func profitOutlook(fd models.ForecastData) models.InsightItem {
	severity := models.SeverityInfo
	if fd.ForecastedProfit < 0 {
		severity = models.SeverityWarning
	}
	insight := models.NewInsight(models.CategoryForecast, severity,
		"Next month profit outlook",
		fmt.Sprintf("Profit is projected at $%.2f next month on expenses of $%.2f.",
			fd.ForecastedProfit, fd.ForecastedExpenses))
	insight.MetricValue = fd.ForecastedProfit
	insight.PercentChange = fd.ProfitGrowthPercent
	if fd.ForecastedProfit < 0 {
		insight.Recommendation = "Projected expenses exceed projected revenue; review discretionary spending now."
	}
	return insight
}

// depletionRisks flags products whose current stock covers less than the
// configured number of days at the recent sales velocity. Products that are
// not selling are never flagged regardless of stock level.
func (e *Engine) depletionRisks(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	if len(data.Inventory) == 0 {
		return nil
	}

	window := models.NewDateRange(period.End.AddDate(0, 0, -(e.cfg.DepletionWindowDays-1)), period.End)
	sold := make(map[string]float64)
	for _, s := range data.SalesIn(window) {
		for _, item := range s.Items {
			qty, _ := item.Quantity.Float64()
			sold[item.ProductID] += qty
		}
	}

	var atRisk []string
	for _, level := range data.Inventory {
		velocity := sold[level.ProductID] / float64(e.cfg.DepletionWindowDays)
		if velocity <= 0 {
			continue
		}
		if level.Quantity/velocity <= e.cfg.DepletionDays {
			name := level.ProductID
			if p, ok := data.Product(level.ProductID); ok {
				name = p.Name
			}
			atRisk = append(atRisk, name)
		}
	}
	if len(atRisk) == 0 {
		return nil
	}

	named := atRisk
	if len(named) > 3 {
		named = named[:3]
	}
	insight := models.NewInsight(models.CategoryForecast, models.SeverityWarning,
		"Inventory at risk of running out",
		fmt.Sprintf("%d product(s) will run out within %.0f days at the current sales pace.",
			len(atRisk), e.cfg.DepletionDays))
	insight.Recommendation = fmt.Sprintf("Reorder soon: %s.", strings.Join(named, ", "))
	insight.MetricValue = float64(len(atRisk))
	return []models.InsightItem{insight}
}
