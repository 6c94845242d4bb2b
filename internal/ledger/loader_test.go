package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadFullLedger(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\n"+
			"s1,2024-06-01,1500.00,c1\n"+
			"s2,2024-06-02,\"2,200.50\",c2\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\n"+
			"e1,2024-06-03,800.00,sup1\n")
	writeFile(t, dir, ReturnsFile,
		"id,date,sale_id,product_id,amount_usd\n"+
			"r1,2024-06-10,s1,p1,100.00\n")
	writeFile(t, dir, LineItemsFile,
		"document_id,product_id,quantity,unit_price,unit_cost\n"+
			"s1,p1,3,500.00,200.00\n")
	writeFile(t, dir, ProductsFile,
		"products:\n  - id: p1\n    name: Blue Widget\n    sku: BW-1\n")
	writeFile(t, dir, CustomersFile,
		"customers:\n  - id: c1\n    name: Acme Corp\n")
	writeFile(t, dir, InvoicesFile,
		"invoices:\n  - id: i1\n    customer_id: c1\n    balance: 500\n    overdue: true\n")
	writeFile(t, dir, InventoryFile,
		"inventory:\n  - product_id: p1\n    quantity: 40\n")

	data, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, data.Sales, 2)
	assert.Equal(t, "s1", data.Sales[0].ID)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), data.Sales[0].Date)
	assert.Equal(t, "1500", data.Sales[0].AmountUSD.String())
	assert.Equal(t, "2200.5", data.Sales[1].AmountUSD.String())

	require.Len(t, data.Sales[0].Items, 1)
	assert.Equal(t, "p1", data.Sales[0].Items[0].ProductID)
	assert.True(t, data.Sales[0].Items[0].HasKnownCost())

	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "sup1", data.Expenses[0].SupplierID)

	require.Len(t, data.Returns, 1)
	assert.Equal(t, "s1", data.Returns[0].SaleID)

	p, ok := data.Product("p1")
	require.True(t, ok)
	assert.Equal(t, "Blue Widget", p.Name)

	c, ok := data.Customer("c1")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", c.Name)

	require.Len(t, data.Invoices, 1)
	assert.True(t, data.Invoices[0].Overdue)
	require.Len(t, data.Inventory, 1)
	assert.InDelta(t, 40.0, data.Inventory[0].Quantity, 1e-9)
}

func TestLoadOptionalFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\ns1,2024-06-01,100.00,c1\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\ne1,2024-06-03,50.00,sup1\n")

	data, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, data.Sales, 1)
	assert.Empty(t, data.Returns)
	assert.Empty(t, data.Invoices)
	assert.Empty(t, data.Inventory)
}

func TestLoadMissingSalesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\ne1,2024-06-03,50.00,sup1\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadBadDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\ns1,not-a-date,100.00,c1\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-date")
}

func TestLoadBadAmount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\ns1,2024-06-01,oops,c1\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLineItemUnknownDocumentSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\ns1,2024-06-01,100.00,c1\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\n")
	writeFile(t, dir, LineItemsFile,
		"document_id,product_id,quantity,unit_price,unit_cost\n"+
			"ghost,p1,1,10.00,5.00\n")

	data, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, data.Sales[0].Items)
}

func TestBareYAMLListAccepted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SalesFile,
		"id,date,amount_usd,customer_id\ns1,2024-06-01,100.00,c1\n")
	writeFile(t, dir, ExpensesFile,
		"id,date,amount_usd,supplier_id\n")
	writeFile(t, dir, ProductsFile,
		"- id: p1\n  name: Bare Widget\n")

	data, err := Load(dir)
	require.NoError(t, err)
	p, ok := data.Product("p1")
	require.True(t, ok)
	assert.Equal(t, "Bare Widget", p.Name)
}
