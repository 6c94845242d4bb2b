package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the company catalogue.
type Product struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	SKU  string `json:"sku,omitempty" yaml:"sku,omitempty"`
}

// Customer represents a customer the company sells to.
type Customer struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Supplier represents a supplier the company purchases from.
type Supplier struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Invoice represents an outgoing invoice with its outstanding balance.
type Invoice struct {
	ID         string          `json:"id" yaml:"id"`
	CustomerID string          `json:"customer_id" yaml:"customer_id"`
	IssuedDate time.Time       `json:"issued_date" yaml:"issued_date"`
	DueDate    time.Time       `json:"due_date" yaml:"due_date"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
	Overdue    bool            `json:"overdue" yaml:"overdue"`
}

// DaysOverdue returns how many days past due the invoice is at the given
// reference date. Zero when the invoice is not yet due.
func (i Invoice) DaysOverdue(asOf time.Time) int {
	if !asOf.After(i.DueDate) {
		return 0
	}
	return int(asOf.Sub(i.DueDate).Hours() / 24)
}

// InventoryLevel represents the current stock quantity of a product.
type InventoryLevel struct {
	ProductID string  `json:"product_id" yaml:"product_id"`
	Quantity  float64 `json:"quantity" yaml:"quantity"`
}
