// Package ledger loads the company ledger from a data directory: the
// transaction history from CSV files and the master data (products,
// customers, suppliers, invoices, inventory) from YAML files.
package ledger

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// readCSVFile reads CSV data into a slice of row structs using gocsv.
// TRow is the struct type that maps to the CSV columns.
func readCSVFile[TRow any](filePath string) ([]TRow, error) {
	log.WithField("file", filePath).Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithFields(logrus.Fields{"file": filePath, "count": len(rows)}).
		Debug("Read CSV data")
	return rows, nil
}

// readOptionalCSVFile is readCSVFile for files that may legitimately be
// absent, such as returns.csv in a business that has never had one.
func readOptionalCSVFile[TRow any](filePath string) ([]TRow, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.WithField("file", filePath).Debug("Optional CSV file not present, skipping")
		return nil, nil
	}
	return readCSVFile[TRow](filePath)
}
