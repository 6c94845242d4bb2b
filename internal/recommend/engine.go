// Package recommend generates actionable business recommendations from
// heuristic rules over margins, customer activity, receivables and
// concentration risk.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/ledger-insights/internal/models"
)

var log = logrus.New()

// SetLogger sets the logger used by this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Config holds the recommendation rule thresholds.
type Config struct {
	// InactiveDays is how long a repeat customer must go without a purchase
	// before counting as inactive.
	InactiveDays int

	// InactiveMinPurchases is the lifetime purchase count required before a
	// customer counts as a repeat customer.
	InactiveMinPurchases int

	// OverdueEscalationDays is the age, in days, of the oldest overdue
	// invoice at which the receivables recommendation escalates to a
	// warning.
	OverdueEscalationDays int

	// SupplierConcentrationPercent is the expense share above which a
	// single supplier counts as a concentration risk.
	SupplierConcentrationPercent float64

	// SupplierMinCount is the number of distinct suppliers required before
	// supplier concentration is evaluated.
	SupplierMinCount int

	// CustomerConcentrationPercent is the revenue share above which a
	// single customer counts as a concentration risk.
	CustomerConcentrationPercent float64

	// CustomerMinCount is the number of distinct customers required before
	// customer concentration is evaluated.
	CustomerMinCount int

	// LowMarginPercent is the overall profit margin below which a warning
	// is raised.
	LowMarginPercent float64

	// HighMarginPercent is the overall profit margin above which a healthy
	// margin is acknowledged.
	HighMarginPercent float64
}

// DefaultConfig returns the standard recommendation thresholds.
func DefaultConfig() Config {
	return Config{
		InactiveDays:                 60,
		InactiveMinPurchases:         2,
		OverdueEscalationDays:        30,
		SupplierConcentrationPercent: 60.0,
		SupplierMinCount:             2,
		CustomerConcentrationPercent: 40.0,
		CustomerMinCount:             3,
		LowMarginPercent:             10.0,
		HighMarginPercent:            30.0,
	}
}

// Engine produces recommendation insights from a company snapshot.
type Engine struct {
	cfg Config
}

// NewEngine creates a recommendation engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Generate runs all recommendation rules over the analysis period. A
// cancelled context yields no insights.
func (e *Engine) Generate(ctx context.Context, data *models.CompanyData, period models.DateRange) []models.InsightItem {
	if ctx.Err() != nil || data == nil {
		return nil
	}

	var insights []models.InsightItem
	insights = append(insights, e.topMarginProduct(data, period)...)
	insights = append(insights, e.inactiveCustomers(data, period)...)
	insights = append(insights, e.overdueInvoices(data, period)...)
	insights = append(insights, e.supplierConcentration(data, period)...)
	insights = append(insights, e.customerConcentration(data, period)...)
	insights = append(insights, e.profitMargin(data, period)...)

	log.WithFields(logrus.Fields{
		"period":        period.String(),
		"insight_count": len(insights),
	}).Debug("Recommendations generated")

	return insights
}

// topMarginProduct finds the period's highest-margin product across sale
// line items with a known cost.
func (e *Engine) topMarginProduct(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	type productTotals struct {
		revenue decimal.Decimal
		cost    decimal.Decimal
	}
	totals := make(map[string]*productTotals)
	for _, s := range data.SalesIn(period) {
		for _, item := range s.Items {
			if item.ProductID == "" || !item.HasKnownCost() {
				continue
			}
			pt, ok := totals[item.ProductID]
			if !ok {
				pt = &productTotals{}
				totals[item.ProductID] = pt
			}
			pt.revenue = pt.revenue.Add(item.Revenue())
			pt.cost = pt.cost.Add(item.Cost())
		}
	}

	bestID := ""
	bestMargin := 0.0
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		pt := totals[id]
		if !pt.revenue.IsPositive() {
			continue
		}
		revenue, _ := pt.revenue.Float64()
		cost, _ := pt.cost.Float64()
		margin := (revenue - cost) / revenue * 100
		if bestID == "" || margin > bestMargin {
			bestID, bestMargin = id, margin
		}
	}
	if bestID == "" {
		return nil
	}

	name := bestID
	if p, ok := data.Product(bestID); ok {
		name = p.Name
	}
	insight := models.NewInsight(models.CategoryRecommendation, models.SeveritySuccess,
		"Best margin product",
		fmt.Sprintf("%s earns the highest margin this period at %.1f%%.", name, bestMargin))
	insight.Recommendation = fmt.Sprintf("Feature %s more prominently; each sale contributes outsized profit.", name)
	insight.MetricValue = bestMargin
	return []models.InsightItem{insight}
}

// inactiveCustomers counts repeat customers whose last purchase is older
// than the inactivity threshold.
func (e *Engine) inactiveCustomers(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	lastSale := make(map[string]int)
	lastDate := make(map[string]models.Sale)
	for _, s := range data.Sales {
		if s.CustomerID == "" || s.Date.After(period.End) {
			continue
		}
		lastSale[s.CustomerID]++
		if prev, seen := lastDate[s.CustomerID]; !seen || s.Date.After(prev.Date) {
			lastDate[s.CustomerID] = s
		}
	}

	cutoff := period.End.AddDate(0, 0, -e.cfg.InactiveDays)
	inactive := 0
	for id, count := range lastSale {
		if count >= e.cfg.InactiveMinPurchases && lastDate[id].Date.Before(cutoff) {
			inactive++
		}
	}
	if inactive == 0 {
		return nil
	}

	insight := models.NewInsight(models.CategoryRecommendation, models.SeverityInfo,
		"Repeat customers going quiet",
		fmt.Sprintf("%d repeat customer(s) have not purchased in over %d days.", inactive, e.cfg.InactiveDays))
	insight.Recommendation = "Run a re-engagement campaign before these relationships lapse."
	insight.MetricValue = float64(inactive)
	return []models.InsightItem{insight}
}

// overdueInvoices summarizes outstanding overdue receivables. The severity
// escalates when the oldest invoice has aged past the escalation threshold.
func (e *Engine) overdueInvoices(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	count := 0
	total := decimal.Zero
	oldest := 0
	for _, inv := range data.Invoices {
		if !inv.Overdue || !inv.Balance.IsPositive() {
			continue
		}
		count++
		total = total.Add(inv.Balance)
		if d := inv.DaysOverdue(period.End); d > oldest {
			oldest = d
		}
	}
	if count == 0 {
		return nil
	}

	severity := models.SeverityInfo
	if oldest > e.cfg.OverdueEscalationDays {
		severity = models.SeverityWarning
	}
	totalF, _ := total.Float64()
	insight := models.NewInsight(models.CategoryRecommendation, severity,
		"Overdue invoices need collection",
		fmt.Sprintf("%d overdue invoice(s) totalling $%.2f; the oldest is %d days past due.", count, totalF, oldest))
	insight.Recommendation = "Chase the oldest balances first; collection odds fall sharply with age."
	insight.MetricValue = totalF
	return []models.InsightItem{insight}
}

// supplierConcentration warns when one supplier takes an outsized share of
// period expenses.
func (e *Engine) supplierConcentration(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, exp := range data.ExpensesIn(period) {
		if exp.SupplierID == "" {
			continue
		}
		totals[exp.SupplierID] = totals[exp.SupplierID].Add(exp.AmountUSD)
		grand = grand.Add(exp.AmountUSD)
	}
	if len(totals) < e.cfg.SupplierMinCount || !grand.IsPositive() {
		return nil
	}

	topID, share := topShare(totals, grand)
	if share <= e.cfg.SupplierConcentrationPercent {
		return nil
	}

	name := topID
	if s, ok := data.Supplier(topID); ok {
		name = s.Name
	}
	insight := models.NewInsight(models.CategoryRecommendation, models.SeverityWarning,
		"Heavy reliance on one supplier",
		fmt.Sprintf("%s accounts for %.1f%% of period expenses.", name, share))
	insight.Recommendation = "Line up an alternative supplier to reduce disruption risk."
	insight.MetricValue = share
	return []models.InsightItem{insight}
}

// customerConcentration warns when one customer takes an outsized share of
// period revenue.
func (e *Engine) customerConcentration(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, s := range data.SalesIn(period) {
		if s.CustomerID == "" {
			continue
		}
		totals[s.CustomerID] = totals[s.CustomerID].Add(s.AmountUSD)
		grand = grand.Add(s.AmountUSD)
	}
	if len(totals) < e.cfg.CustomerMinCount || !grand.IsPositive() {
		return nil
	}

	topID, share := topShare(totals, grand)
	if share <= e.cfg.CustomerConcentrationPercent {
		return nil
	}

	name := topID
	if c, ok := data.Customer(topID); ok {
		name = c.Name
	}
	insight := models.NewInsight(models.CategoryRecommendation, models.SeverityWarning,
		"Revenue concentrated in one customer",
		fmt.Sprintf("%s provides %.1f%% of period revenue.", name, share))
	insight.Recommendation = "Broaden the customer base; losing this account would hit revenue hard."
	insight.MetricValue = share
	return []models.InsightItem{insight}
}

// topShare returns the key with the largest total and its percentage share
// of the grand total. Ties break on the lexically smaller key so results
// stay deterministic.
func topShare(totals map[string]decimal.Decimal, grand decimal.Decimal) (string, float64) {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	topID := ""
	top := decimal.Zero
	for _, k := range keys {
		if totals[k].GreaterThan(top) {
			topID, top = k, totals[k]
		}
	}
	share, _ := top.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
	return topID, share
}

// profitMargin assesses the overall period margin against the low and high
// thresholds. Margins in between produce no insight.
func (e *Engine) profitMargin(data *models.CompanyData, period models.DateRange) []models.InsightItem {
	revenue := models.SumSales(data.SalesIn(period))
	if !revenue.IsPositive() {
		return nil
	}
	expenses := models.SumExpenses(data.ExpensesIn(period))
	margin, _ := revenue.Sub(expenses).Div(revenue).Mul(decimal.NewFromInt(100)).Float64()

	switch {
	case margin < e.cfg.LowMarginPercent:
		insight := models.NewInsight(models.CategoryRecommendation, models.SeverityWarning,
			"Profit margin is thin",
			fmt.Sprintf("The period profit margin is %.1f%%, below the %.0f%% floor.", margin, e.cfg.LowMarginPercent))
		insight.Recommendation = "Review pricing and trim the largest expense categories."
		insight.MetricValue = margin
		return []models.InsightItem{insight}
	case margin > e.cfg.HighMarginPercent:
		insight := models.NewInsight(models.CategoryRecommendation, models.SeveritySuccess,
			"Healthy profit margin",
			fmt.Sprintf("The period profit margin is a strong %.1f%%.", margin))
		insight.Recommendation = "Margins support reinvesting in growth."
		insight.MetricValue = margin
		return []models.InsightItem{insight}
	default:
		return nil
	}
}
