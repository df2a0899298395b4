package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for every schedule key
const DateLayout = "2006-01-02"

// MonthLayout is the format of a month selector ("2024-07")
const MonthLayout = "2006-01"

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDate formats a date as a schedule key
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays moves a date by n calendar days
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from a to b (negative if b is before a)
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// IsSaturday reports whether t falls on a Saturday
func IsSaturday(t time.Time) bool {
	return t.Weekday() == time.Saturday
}

// IsSunday reports whether t falls on a Sunday
func IsSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}

// IsWeekend reports whether t falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	return IsSaturday(t) || IsSunday(t)
}

// FirstSaturdayOnOrAfter returns t if it is a Saturday, otherwise the next Saturday
func FirstSaturdayOnOrAfter(t time.Time) time.Time {
	t = Truncate(t)
	daysUntilSaturday := (int(time.Saturday) - int(t.Weekday()) + 7) % 7
	return AddDays(t, daysUntilSaturday)
}

// StartOfWeek returns the Monday of the ISO week containing t
func StartOfWeek(t time.Time) time.Time {
	t = Truncate(t)
	// Sunday is 0 in Go, but the last day of an ISO week
	offset := (int(t.Weekday()) + 6) % 7
	return AddDays(t, -offset)
}

// WeekDays returns Monday to Sunday of the ISO week containing t
func WeekDays(t time.Time) []time.Time {
	monday := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(monday, i)
	}
	return days
}
