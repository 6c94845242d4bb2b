// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents a single product line on a sale or expense document.
// UnitCost may be zero when the cost of the product is not known; margin
// calculations skip such lines.
type LineItem struct {
	ProductID string          `json:"product_id" yaml:"product_id"`
	Quantity  decimal.Decimal `json:"quantity" yaml:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost" yaml:"unit_cost"`
}

// Revenue returns the total revenue of the line (quantity * unit price).
func (li LineItem) Revenue() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Cost returns the total cost of the line (quantity * unit cost).
func (li LineItem) Cost() decimal.Decimal {
	return li.Quantity.Mul(li.UnitCost)
}

// HasKnownCost reports whether the line carries a usable cost figure.
func (li LineItem) HasKnownCost() bool {
	return li.UnitCost.IsPositive()
}

// Sale represents a single sale from the company ledger. Amounts arrive
// pre-normalized to the reporting currency (USD); this engine performs no
// currency conversion.
type Sale struct {
	ID         string          `json:"id" yaml:"id"`
	Date       time.Time       `json:"date" yaml:"date"`
	AmountUSD  decimal.Decimal `json:"amount_usd" yaml:"amount_usd"`
	CustomerID string          `json:"customer_id" yaml:"customer_id"`
	Items      []LineItem      `json:"items,omitempty" yaml:"items,omitempty"`
}

// Expense represents a single purchase or operating expense from the ledger.
type Expense struct {
	ID         string          `json:"id" yaml:"id"`
	Date       time.Time       `json:"date" yaml:"date"`
	AmountUSD  decimal.Decimal `json:"amount_usd" yaml:"amount_usd"`
	SupplierID string          `json:"supplier_id" yaml:"supplier_id"`
	Items      []LineItem      `json:"items,omitempty" yaml:"items,omitempty"`
}

// Return represents a customer return of a previously sold product.
type Return struct {
	ID        string          `json:"id" yaml:"id"`
	Date      time.Time       `json:"date" yaml:"date"`
	SaleID    string          `json:"sale_id" yaml:"sale_id"`
	ProductID string          `json:"product_id" yaml:"product_id"`
	AmountUSD decimal.Decimal `json:"amount_usd" yaml:"amount_usd"`
}

// AmountFloat returns the sale amount as a float64 for use at the statistics
// boundary. Monetary aggregation stays on decimal; only dimensionless
// statistics (z-scores, regression) operate on floats.
func (s Sale) AmountFloat() float64 {
	f, _ := s.AmountUSD.Float64()
	return f
}

// AmountFloat returns the expense amount as a float64 for use at the
// statistics boundary.
func (e Expense) AmountFloat() float64 {
	f, _ := e.AmountUSD.Float64()
	return f
}

// SumSales returns the exact decimal total of the given sales.
func SumSales(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.AmountUSD)
	}
	return total
}

// SumExpenses returns the exact decimal total of the given expenses.
func SumExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.AmountUSD)
	}
	return total
}
