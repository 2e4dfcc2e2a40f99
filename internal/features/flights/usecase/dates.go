package usecase

import (
	"time"

	"amadeus-cli/internal/common"
)

// DateFilter selects which days of the week a generated range includes
type DateFilter int

// Date filters
const (
	// FilterAll includes every day
	FilterAll DateFilter = iota

	// FilterWeekendsOnly includes Saturdays and Sundays
	FilterWeekendsOnly

	// FilterWeekdaysOnly includes Monday through Friday
	FilterWeekdaysOnly
)

// ParseDateFilter maps the two exclusive CLI flags onto a single filter.
// Setting both is a caller error.
func ParseDateFilter(weekendsOnly, weekdaysOnly bool) (DateFilter, error) {
	switch {
	case weekendsOnly && weekdaysOnly:
		return FilterAll, common.InvalidInputError(
			"weekends-only and weekdays-only are mutually exclusive")
	case weekendsOnly:
		return FilterWeekendsOnly, nil
	case weekdaysOnly:
		return FilterWeekdaysOnly, nil
	default:
		return FilterAll, nil
	}
}

// matches reports whether the day passes the filter
func (f DateFilter) matches(day time.Weekday) bool {
	switch f {
	case FilterWeekendsOnly:
		return day == time.Saturday || day == time.Sunday
	case FilterWeekdaysOnly:
		return day >= time.Monday && day <= time.Friday
	default:
		return true
	}
}

// GenerateDateRange lists each calendar day from start to end inclusive
// that passes the filter, in order. A start after end yields an empty
// sequence.
func GenerateDateRange(start, end time.Time, filter DateFilter) []time.Time {
	var dates []time.Time

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if filter.matches(current.Weekday()) {
			dates = append(dates, current)
		}
	}

	return dates
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, common.InvalidInputError("invalid date %q, expected YYYY-MM-DD", value)
	}
	return parsed, nil
}
