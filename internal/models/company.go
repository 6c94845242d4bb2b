package models

// CompanyData is an immutable snapshot of a company ledger handed to the
// analysis engine. The engine never mutates it; callers may share one
// snapshot across concurrent analysis calls.
type CompanyData struct {
	Sales     []Sale
	Expenses  []Expense
	Returns   []Return
	Invoices  []Invoice
	Inventory []InventoryLevel

	products  map[string]Product
	customers map[string]Customer
	suppliers map[string]Supplier
}

// NewCompanyData builds a snapshot from ledger collections and master data.
// Lookup maps are keyed by entity ID.
func NewCompanyData(sales []Sale, expenses []Expense, returns []Return,
	invoices []Invoice, inventory []InventoryLevel,
	products []Product, customers []Customer, suppliers []Supplier) *CompanyData {

	cd := &CompanyData{
		Sales:     sales,
		Expenses:  expenses,
		Returns:   returns,
		Invoices:  invoices,
		Inventory: inventory,
		products:  make(map[string]Product, len(products)),
		customers: make(map[string]Customer, len(customers)),
		suppliers: make(map[string]Supplier, len(suppliers)),
	}
	for _, p := range products {
		cd.products[p.ID] = p
	}
	for _, c := range customers {
		cd.customers[c.ID] = c
	}
	for _, s := range suppliers {
		cd.suppliers[s.ID] = s
	}
	return cd
}

// Product looks up a product by ID. The second return value is false when
// the reference cannot be resolved; callers must branch on it and degrade to
// omitting the name rather than failing.
func (cd *CompanyData) Product(id string) (Product, bool) {
	p, ok := cd.products[id]
	return p, ok
}

// Customer looks up a customer by ID.
func (cd *CompanyData) Customer(id string) (Customer, bool) {
	c, ok := cd.customers[id]
	return c, ok
}

// Supplier looks up a supplier by ID.
func (cd *CompanyData) Supplier(id string) (Supplier, bool) {
	s, ok := cd.suppliers[id]
	return s, ok
}

// SalesIn returns the sales whose date falls inside the range.
func (cd *CompanyData) SalesIn(r DateRange) []Sale {
	var out []Sale
	for _, s := range cd.Sales {
		if r.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// ExpensesIn returns the expenses whose date falls inside the range.
func (cd *CompanyData) ExpensesIn(r DateRange) []Expense {
	var out []Expense
	for _, e := range cd.Expenses {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// ReturnsIn returns the customer returns whose date falls inside the range.
func (cd *CompanyData) ReturnsIn(r DateRange) []Return {
	var out []Return
	for _, ret := range cd.Returns {
		if r.Contains(ret.Date) {
			out = append(out, ret)
		}
	}
	return out
}
