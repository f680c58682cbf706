package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC)
	tests := []struct {
		input string
		from  string
		to    string
	}{
		{input: "", from: "", to: ""},
		{input: "all", from: "", to: ""},
		{input: "month", from: "2024-03-01", to: "2024-03-31"},
		{input: "last30", from: "2024-02-14", to: ""},
		{input: "Last7", from: "2024-03-08", to: ""},
		{input: "2024-02", from: "2024-02-01", to: "2024-02-29"},
		{input: "2024-01-10..2024-01-20", from: "2024-01-10", to: "2024-01-20"},
		{input: "2024-01-10..", from: "2024-01-10", to: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePeriod(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.from, formatBound(got.From))
			assert.Equal(t, tt.to, formatBound(got.To))
		})
	}
}

func TestParsePeriodErrors(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"last0", "lastx", "2024-13", "yesterday", "2024-02-10..2024-02-01", "2024-02-10..soon"} {
		_, err := ParsePeriod(input, now)
		assert.Error(t, err, "input %q", input)
	}
}

func TestPeriodContains(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	last := LastDays(now, 30)
	assert.True(t, last.Contains(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, last.Contains(time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC)))
	assert.True(t, last.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), "future rows stay in range")

	month := CurrentMonth(now)
	assert.True(t, month.Contains(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, month.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	assert.True(t, AllTime().Contains(time.Time{}))
	assert.Equal(t, "all", AllTime().String())
	assert.Equal(t, "2024-03-01..2024-03-31", month.String())
}

func formatBound(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}
