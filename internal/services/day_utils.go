package services

import "time"

const dayKeyLayout = "2006-01-02"

// ParseDay parses an ISO YYYY-MM-DD key into a midnight-UTC time.
func ParseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, raw, time.UTC)
}

// FormatDay renders the ISO day key for a time value.
func FormatDay(day time.Time) string {
	return day.Format(dayKeyLayout)
}

// IsValidDay reports whether raw is a well-formed ISO day key.
func IsValidDay(raw string) bool {
	_, err := ParseDay(raw)
	return err == nil
}

func AddDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

// DaysBetween returns the whole-day distance from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func betweenInclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return (day.Equal(start) || day.After(start)) && (day.Equal(end) || day.Before(end))
}
