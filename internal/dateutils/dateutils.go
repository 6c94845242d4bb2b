// Package dateutils provides common date operations used throughout the
// application, including the bucketing keys the analysis engines group by.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	DateLayoutWithMonth,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthKey returns the calendar-month bucket key for a date, computed as
// year*100+month. The forecast engine aggregates by this exact key, so its
// semantics must not change.
func MonthKey(date time.Time) int {
	return date.Year()*100 + int(date.Month())
}

// WeekKey returns the ISO-week bucket key for a date, computed as
// isoYear*100+isoWeek. Weekly anomaly baselines group by this exact key.
func WeekKey(date time.Time) int {
	year, week := date.ISOWeek()
	return year*100 + week
}

// DayKey returns the calendar-day bucket key for a date as an ISO date
// string, which sorts chronologically.
func DayKey(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthsBetween returns the inclusive calendar-month difference between two
// dates: dates in the same month yield 1 regardless of day distance.
func MonthsBetween(first, last time.Time) int {
	if last.Before(first) {
		first, last = last, first
	}
	return (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
}
