package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amadeus-cli/internal/common"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseDate(value)
	require.NoError(t, err)
	return parsed
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, date := range dates {
		out = append(out, date.Format(time.DateOnly))
	}
	return out
}

func TestGenerateDateRange(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		filter DateFilter
		want   []string
	}{
		{
			name:   "every day inclusive",
			start:  "2026-03-01",
			end:    "2026-03-04",
			filter: FilterAll,
			want:   []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"},
		},
		{
			name:   "weekends only",
			start:  "2026-03-01",
			end:    "2026-03-07",
			filter: FilterWeekendsOnly,
			want:   []string{"2026-03-01", "2026-03-07"},
		},
		{
			name:   "weekdays only",
			start:  "2026-03-01",
			end:    "2026-03-07",
			filter: FilterWeekdaysOnly,
			want:   []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"},
		},
		{
			name:   "single day",
			start:  "2026-03-03",
			end:    "2026-03-03",
			filter: FilterAll,
			want:   []string{"2026-03-03"},
		},
		{
			name:   "start after end",
			start:  "2026-03-07",
			end:    "2026-03-01",
			filter: FilterAll,
			want:   nil,
		},
		{
			name:   "filter matches nothing",
			start:  "2026-03-02",
			end:    "2026-03-06",
			filter: FilterWeekendsOnly,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := GenerateDateRange(mustDate(t, tt.start), mustDate(t, tt.end), tt.filter)
			if tt.want == nil {
				assert.Empty(t, dates)
				return
			}
			assert.Equal(t, tt.want, formatDates(dates))
		})
	}
}

func TestParseDateFilter(t *testing.T) {
	filter, err := ParseDateFilter(false, false)
	require.NoError(t, err)
	assert.Equal(t, FilterAll, filter)

	filter, err = ParseDateFilter(true, false)
	require.NoError(t, err)
	assert.Equal(t, FilterWeekendsOnly, filter)

	filter, err = ParseDateFilter(false, true)
	require.NoError(t, err)
	assert.Equal(t, FilterWeekdaysOnly, filter)

	_, err = ParseDateFilter(true, true)
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15/03/2026")
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))
}
