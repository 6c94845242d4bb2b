package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"ISO format", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"European format", "15.03.2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"with surrounding whitespace", "  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, _, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(tt.expected), "got %s", parsed)
		})
	}

	t.Run("unparseable", func(t *testing.T) {
		_, _, err := ParseDate("not a date")
		assert.Error(t, err)
	})
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, 202403, MonthKey(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 202412, MonthKey(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 202401, MonthKey(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekKey(t *testing.T) {
	// 2024-01-01 is a Monday in ISO week 1 of 2024.
	assert.Equal(t, 202401, WeekKey(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	// 2023-01-01 is a Sunday belonging to ISO week 52 of 2022.
	assert.Equal(t, 202252, WeekKey(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    time.Time
		last     time.Time
		expected int
	}{
		{"same month", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC), 1},
		{"adjacent months", time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), 2},
		{"across year boundary", time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 4},
		{"reversed arguments", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.first, tt.last))
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	d := time.Date(2024, 2, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
}
