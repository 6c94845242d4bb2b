package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRangeNormalizesToMidnight(t *testing.T) {
	r := NewDateRange(
		time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, day(2024, 3, 1), r.Start)
	assert.Equal(t, day(2024, 3, 31), r.End)
}

func TestDateRangeValidate(t *testing.T) {
	valid := NewDateRange(day(2024, 1, 1), day(2024, 1, 31))
	assert.NoError(t, valid.Validate())

	single := NewDateRange(day(2024, 1, 1), day(2024, 1, 1))
	assert.NoError(t, single.Validate())

	inverted := DateRange{Start: day(2024, 2, 1), End: day(2024, 1, 1)}
	assert.Error(t, inverted.Validate())
}

func TestDateRangeDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2024, 1, 15), day(2024, 1, 15), 1},
		{"full january", day(2024, 1, 1), day(2024, 1, 31), 31},
		{"across leap day", day(2024, 2, 28), day(2024, 3, 1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDateRange(tt.start, tt.end)
			assert.Equal(t, tt.want, r.Days())
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(day(2024, 6, 1), day(2024, 6, 30))

	assert.True(t, r.Contains(day(2024, 6, 1)))
	assert.True(t, r.Contains(day(2024, 6, 30)))
	assert.True(t, r.Contains(time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(day(2024, 5, 31)))
	assert.False(t, r.Contains(day(2024, 7, 1)))
}

func TestDateRangePrevious(t *testing.T) {
	r := NewDateRange(day(2024, 6, 1), day(2024, 6, 30))
	prev := r.Previous()

	assert.Equal(t, day(2024, 5, 2), prev.Start)
	assert.Equal(t, day(2024, 5, 31), prev.End)
	assert.Equal(t, r.Days(), prev.Days())
}

func TestDateRangeString(t *testing.T) {
	r := NewDateRange(day(2024, 1, 1), day(2024, 12, 31))
	require.Equal(t, "2024-01-01..2024-12-31", r.String())
}
