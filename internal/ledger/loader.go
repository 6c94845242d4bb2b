package ledger

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"

	"fjacquet/ledger-insights/internal/currencyutils"
	"fjacquet/ledger-insights/internal/dateutils"
	"fjacquet/ledger-insights/internal/models"
	"fjacquet/ledger-insights/internal/parsererror"
)

// Ledger file names inside the data directory.
const (
	SalesFile     = "sales.csv"
	ExpensesFile  = "expenses.csv"
	ReturnsFile   = "returns.csv"
	LineItemsFile = "line_items.csv"
)

// saleRow maps one line of sales.csv.
type saleRow struct {
	ID         string `csv:"id"`
	Date       string `csv:"date"`
	Amount     string `csv:"amount_usd"`
	CustomerID string `csv:"customer_id"`
}

// expenseRow maps one line of expenses.csv.
type expenseRow struct {
	ID         string `csv:"id"`
	Date       string `csv:"date"`
	Amount     string `csv:"amount_usd"`
	SupplierID string `csv:"supplier_id"`
}

// returnRow maps one line of returns.csv.
type returnRow struct {
	ID        string `csv:"id"`
	Date      string `csv:"date"`
	SaleID    string `csv:"sale_id"`
	ProductID string `csv:"product_id"`
	Amount    string `csv:"amount_usd"`
}

// lineItemRow maps one line of line_items.csv. Each row attaches a product
// line to a sale or expense by document ID.
type lineItemRow struct {
	DocumentID string `csv:"document_id"`
	ProductID  string `csv:"product_id"`
	Quantity   string `csv:"quantity"`
	UnitPrice  string `csv:"unit_price"`
	UnitCost   string `csv:"unit_cost"`
}

// Load reads the full company ledger from the given directory. Transaction
// files must parse cleanly; master data files are optional and default to
// empty.
func Load(dir string) (*models.CompanyData, error) {
	sales, err := loadSales(filepath.Join(dir, SalesFile))
	if err != nil {
		return nil, err
	}
	expenses, err := loadExpenses(filepath.Join(dir, ExpensesFile))
	if err != nil {
		return nil, err
	}
	returns, err := loadReturns(filepath.Join(dir, ReturnsFile))
	if err != nil {
		return nil, err
	}
	if err := attachLineItems(filepath.Join(dir, LineItemsFile), sales, expenses); err != nil {
		return nil, err
	}

	master, err := loadMasterData(dir)
	if err != nil {
		return nil, err
	}

	log.WithField("file", dir).Infof("Loaded ledger: %d sales, %d expenses, %d returns",
		len(sales), len(expenses), len(returns))

	return models.NewCompanyData(sales, expenses, returns,
		master.Invoices, master.Inventory,
		master.Products, master.Customers, master.Suppliers), nil
}

func loadSales(path string) ([]models.Sale, error) {
	rows, err := readCSVFile[saleRow](path)
	if err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(rows))
	for _, row := range rows {
		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "date", Value: row.Date, Err: err}
		}
		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "amount_usd", Value: row.Amount, Err: err}
		}
		sales = append(sales, models.Sale{
			ID:         row.ID,
			Date:       date,
			AmountUSD:  amount,
			CustomerID: row.CustomerID,
		})
	}
	return sales, nil
}

func loadExpenses(path string) ([]models.Expense, error) {
	rows, err := readCSVFile[expenseRow](path)
	if err != nil {
		return nil, err
	}
	expenses := make([]models.Expense, 0, len(rows))
	for _, row := range rows {
		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "date", Value: row.Date, Err: err}
		}
		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "amount_usd", Value: row.Amount, Err: err}
		}
		expenses = append(expenses, models.Expense{
			ID:         row.ID,
			Date:       date,
			AmountUSD:  amount,
			SupplierID: row.SupplierID,
		})
	}
	return expenses, nil
}

func loadReturns(path string) ([]models.Return, error) {
	rows, err := readOptionalCSVFile[returnRow](path)
	if err != nil {
		return nil, err
	}
	returns := make([]models.Return, 0, len(rows))
	for _, row := range rows {
		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "date", Value: row.Date, Err: err}
		}
		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			return nil, &parsererror.ParseError{File: path, Field: "amount_usd", Value: row.Amount, Err: err}
		}
		returns = append(returns, models.Return{
			ID:        row.ID,
			Date:      date,
			SaleID:    row.SaleID,
			ProductID: row.ProductID,
			AmountUSD: amount,
		})
	}
	return returns, nil
}

// attachLineItems joins line item rows onto their parent sales and expenses
// by document ID. Rows referencing unknown documents are skipped with a
// warning rather than failing the load.
func attachLineItems(path string, sales []models.Sale, expenses []models.Expense) error {
	rows, err := readOptionalCSVFile[lineItemRow](path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	saleIdx := make(map[string]*models.Sale, len(sales))
	for i := range sales {
		saleIdx[sales[i].ID] = &sales[i]
	}
	expenseIdx := make(map[string]*models.Expense, len(expenses))
	for i := range expenses {
		expenseIdx[expenses[i].ID] = &expenses[i]
	}

	for _, row := range rows {
		item, err := parseLineItem(path, row)
		if err != nil {
			return err
		}
		switch {
		case saleIdx[row.DocumentID] != nil:
			s := saleIdx[row.DocumentID]
			s.Items = append(s.Items, item)
		case expenseIdx[row.DocumentID] != nil:
			e := expenseIdx[row.DocumentID]
			e.Items = append(e.Items, item)
		default:
			log.WithField("file", path).
				Warnf("Line item references unknown document %q, skipping", row.DocumentID)
		}
	}
	return nil
}

func parseLineItem(path string, row lineItemRow) (models.LineItem, error) {
	parse := func(field, value string) (decimal.Decimal, error) {
		if value == "" {
			return decimal.Zero, nil
		}
		d, err := currencyutils.ParseAmount(value)
		if err != nil {
			return decimal.Zero, &parsererror.ParseError{File: path, Field: field, Value: value, Err: err}
		}
		return d, nil
	}

	qty, err := parse("quantity", row.Quantity)
	if err != nil {
		return models.LineItem{}, err
	}
	price, err := parse("unit_price", row.UnitPrice)
	if err != nil {
		return models.LineItem{}, err
	}
	cost, err := parse("unit_cost", row.UnitCost)
	if err != nil {
		return models.LineItem{}, err
	}
	if row.ProductID == "" {
		return models.LineItem{}, &parsererror.ValidationError{
			FilePath: path,
			Reason:   fmt.Sprintf("line item for document %q has no product_id", row.DocumentID),
		}
	}
	return models.LineItem{
		ProductID: row.ProductID,
		Quantity:  qty,
		UnitPrice: price,
		UnitCost:  cost,
	}, nil
}
