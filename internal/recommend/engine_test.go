package recommend

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

func findByTitle(items []models.InsightItem, title string) (models.InsightItem, bool) {
	for _, it := range items {
		if it.Title == title {
			return it, true
		}
	}
	return models.InsightItem{}, false
}

var junePeriod = models.NewDateRange(day(2024, time.June, 1), day(2024, time.June, 30))

func TestTopMarginProduct(t *testing.T) {
	e := NewEngine(DefaultConfig())
	products := []models.Product{
		{ID: "p1", Name: "Premium Kit"},
		{ID: "p2", Name: "Basic Kit"},
	}
	sales := []models.Sale{
		{
			ID: "s1", Date: day(2024, time.June, 5), AmountUSD: decimal.NewFromInt(100),
			Items: []models.LineItem{{
				ProductID: "p1", Quantity: decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(20),
			}},
		},
		{
			ID: "s2", Date: day(2024, time.June, 6), AmountUSD: decimal.NewFromInt(100),
			Items: []models.LineItem{{
				ProductID: "p2", Quantity: decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(80),
			}},
		},
	}
	data := models.NewCompanyData(sales, nil, nil, nil, nil, products, nil, nil)

	insight, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Best margin product")
	require.True(t, ok)
	assert.Contains(t, insight.Description, "Premium Kit")
	assert.InDelta(t, 80.0, insight.MetricValue, 0.01)
	assert.Equal(t, models.SeveritySuccess, insight.Severity)
}

func TestTopMarginProductSkipsUnknownCosts(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sales := []models.Sale{
		{
			ID: "s1", Date: day(2024, time.June, 5), AmountUSD: decimal.NewFromInt(100),
			Items: []models.LineItem{{
				ProductID: "p1", Quantity: decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(100),
			}},
		},
	}
	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, nil, nil)
	_, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Best margin product")
	assert.False(t, ok)
}

func TestInactiveCustomers(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sales := []models.Sale{
		// Repeat customer whose last purchase is over 60 days old.
		{ID: "s1", Date: day(2024, time.January, 5), AmountUSD: decimal.NewFromInt(50), CustomerID: "c1"},
		{ID: "s2", Date: day(2024, time.March, 5), AmountUSD: decimal.NewFromInt(50), CustomerID: "c1"},
		// One-off buyer, never counted.
		{ID: "s3", Date: day(2024, time.January, 10), AmountUSD: decimal.NewFromInt(50), CustomerID: "c2"},
		// Repeat customer still active.
		{ID: "s4", Date: day(2024, time.May, 1), AmountUSD: decimal.NewFromInt(50), CustomerID: "c3"},
		{ID: "s5", Date: day(2024, time.June, 15), AmountUSD: decimal.NewFromInt(50), CustomerID: "c3"},
	}
	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, nil, nil)

	insight, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Repeat customers going quiet")
	require.True(t, ok)
	assert.InDelta(t, 1.0, insight.MetricValue, 1e-9)
}

func TestOverdueInvoicesEscalation(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name     string
		dueDate  time.Time
		severity models.Severity
	}{
		{"recently overdue", day(2024, time.June, 10), models.SeverityInfo},
		{"long overdue", day(2024, time.April, 1), models.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices := []models.Invoice{{
				ID: "i1", CustomerID: "c1",
				IssuedDate: tt.dueDate.AddDate(0, -1, 0),
				DueDate:    tt.dueDate,
				Balance:    decimal.NewFromInt(500),
				Overdue:    true,
			}}
			data := models.NewCompanyData(nil, nil, nil, invoices, nil, nil, nil, nil)

			insight, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Overdue invoices need collection")
			require.True(t, ok)
			assert.Equal(t, tt.severity, insight.Severity)
			assert.InDelta(t, 500.0, insight.MetricValue, 0.01)
		})
	}
}

func TestOverdueInvoicesIgnoresSettled(t *testing.T) {
	e := NewEngine(DefaultConfig())
	invoices := []models.Invoice{{
		ID: "i1", DueDate: day(2024, time.April, 1),
		Balance: decimal.Zero, Overdue: true,
	}}
	data := models.NewCompanyData(nil, nil, nil, invoices, nil, nil, nil, nil)
	_, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Overdue invoices need collection")
	assert.False(t, ok)
}

func TestSupplierConcentration(t *testing.T) {
	e := NewEngine(DefaultConfig())
	suppliers := []models.Supplier{{ID: "sup1", Name: "MegaParts"}}
	expenses := []models.Expense{
		{ID: "e1", Date: day(2024, time.June, 3), AmountUSD: decimal.NewFromInt(700), SupplierID: "sup1"},
		{ID: "e2", Date: day(2024, time.June, 8), AmountUSD: decimal.NewFromInt(300), SupplierID: "sup2"},
	}
	data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, suppliers)

	insight, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Heavy reliance on one supplier")
	require.True(t, ok)
	assert.Contains(t, insight.Description, "MegaParts")
	assert.InDelta(t, 70.0, insight.MetricValue, 0.01)
}

func TestSupplierConcentrationNeedsTwoSuppliers(t *testing.T) {
	e := NewEngine(DefaultConfig())
	expenses := []models.Expense{
		{ID: "e1", Date: day(2024, time.June, 3), AmountUSD: decimal.NewFromInt(1000), SupplierID: "sup1"},
	}
	data := models.NewCompanyData(nil, expenses, nil, nil, nil, nil, nil, nil)
	_, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Heavy reliance on one supplier")
	assert.False(t, ok)
}

func TestCustomerConcentration(t *testing.T) {
	e := NewEngine(DefaultConfig())
	customers := []models.Customer{{ID: "c1", Name: "Acme Corp"}}
	sales := []models.Sale{
		{ID: "s1", Date: day(2024, time.June, 3), AmountUSD: decimal.NewFromInt(500), CustomerID: "c1"},
		{ID: "s2", Date: day(2024, time.June, 5), AmountUSD: decimal.NewFromInt(300), CustomerID: "c2"},
		{ID: "s3", Date: day(2024, time.June, 8), AmountUSD: decimal.NewFromInt(200), CustomerID: "c3"},
	}
	data := models.NewCompanyData(sales, nil, nil, nil, nil, nil, customers, nil)

	insight, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), "Revenue concentrated in one customer")
	require.True(t, ok)
	assert.Contains(t, insight.Description, "Acme Corp")
	assert.InDelta(t, 50.0, insight.MetricValue, 0.01)
}

func TestProfitMarginBands(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name     string
		expenses int64
		title    string
		found    bool
	}{
		{"thin margin", 950, "Profit margin is thin", true},
		{"healthy margin", 600, "Healthy profit margin", true},
		{"middling margin", 800, "Profit margin is thin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sales := []models.Sale{{ID: "s1", Date: day(2024, time.June, 5), AmountUSD: decimal.NewFromInt(1000)}}
			expenses := []models.Expense{{ID: "e1", Date: day(2024, time.June, 6), AmountUSD: decimal.NewFromInt(tt.expenses)}}
			data := models.NewCompanyData(sales, expenses, nil, nil, nil, nil, nil, nil)

			_, ok := findByTitle(e.Generate(context.Background(), data, junePeriod), tt.title)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	e := NewEngine(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := models.NewCompanyData(nil, nil, nil, nil, nil, nil, nil, nil)
	assert.Empty(t, e.Generate(ctx, data, junePeriod))
}
