package insights

import (
	"fmt"
	"time"

	"fjacquet/ledger-insights/internal/dateutils"
	"fjacquet/ledger-insights/internal/models"
)

// MinTransactions is the default number of transactions required in the
// analysis period before any analysis runs.
const MinTransactions = 5

// SufficiencyResult reports whether the period holds enough data to analyze
// and, when it does not, a message explaining what is missing.
type SufficiencyResult struct {
	Sufficient       bool
	Message          string
	TransactionCount int
	MonthsOfData     int
}

// CheckSufficiency counts sales and expenses inside the period against the
// minimum. The months figure spans the earliest to the latest transaction
// found in the period.
func CheckSufficiency(data *models.CompanyData, period models.DateRange, minTransactions int) SufficiencyResult {
	if minTransactions <= 0 {
		minTransactions = MinTransactions
	}

	var first, last time.Time
	count := 0
	observe := func(date time.Time) {
		count++
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if last.IsZero() || date.After(last) {
			last = date
		}
	}
	for _, s := range data.SalesIn(period) {
		observe(s.Date)
	}
	for _, e := range data.ExpensesIn(period) {
		observe(e.Date)
	}

	result := SufficiencyResult{TransactionCount: count}
	if count > 0 {
		result.MonthsOfData = dateutils.MonthsBetween(first, last)
	}
	if count < minTransactions {
		result.Message = fmt.Sprintf(
			"Not enough transaction history to analyze: found %d transaction(s) in the period, need at least %d. Add %d more and try again.",
			count, minTransactions, minTransactions-count)
		return result
	}

	result.Sufficient = true
	return result
}
