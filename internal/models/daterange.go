package models

import (
	"fmt"
	"time"
)

// DateRange represents the analysis period. Start and End are inclusive and
// compared at day granularity.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewDateRange builds a range after normalizing both bounds to midnight UTC.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate returns an error when the range is inverted.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("invalid date range: start %s is after end %s",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// Days returns the inclusive number of days covered by the range.
func (r DateRange) Days() int {
	return int(truncateDay(r.End).Sub(truncateDay(r.Start)).Hours()/24) + 1
}

// Contains reports whether the date falls within the range, inclusive of both
// bounds.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(truncateDay(r.Start)) && !d.After(truncateDay(r.End))
}

// Previous returns the period of equal length immediately preceding this one.
func (r DateRange) Previous() DateRange {
	days := r.Days()
	end := truncateDay(r.Start).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return DateRange{Start: start, End: end}
}

// String renders the range for log and report output.
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
