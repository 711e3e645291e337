package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMonthKey(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2025, 1, "2025-01"},
		{2025, 12, "2025-12"},
		{999, 3, "0999-03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonthKey(tt.year, tt.month))
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-02", MonthKey(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("2025-07")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, month)
}

func TestParseMonthKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "2025", "abcd-01", "2025-xx", "2025-13", "2025-00"} {
		_, _, err := ParseMonthKey(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 73, DaysBetween(a, b), 1e-9)
	assert.InDelta(t, -73, DaysBetween(b, a), 1e-9)
}

func TestDaysBetween_LongSpan(t *testing.T) {
	a := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 154863, DaysBetween(a, b), 1e-9)
	assert.InDelta(t, -154863, DaysBetween(b, a), 1e-9)

	y24 := time.Date(24, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 366, DaysBetween(y24, time.Date(25, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
}
