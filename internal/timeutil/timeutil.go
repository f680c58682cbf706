package timeutil

import "time"

const MonthLayout = "2006-01"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// DateOnly drops clock and zone, keeping the calendar date as UTC midnight.
func DateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func StartOfMonth(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func EndOfMonth(value time.Time) time.Time {
	return StartOfMonth(value).AddDate(0, 1, -1)
}

func MonthKey(value time.Time) string {
	return value.Format(MonthLayout)
}

func MinutesFromMidnight(value time.Time) int {
	return value.Hour()*60 + value.Minute()
}
