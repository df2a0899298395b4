package calendar

import (
	"fmt"
	"time"
)

// Month identifies a calendar month being composed
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" selector
func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.UTC)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return m.First().Format(MonthLayout)
}

// First returns the first day of the month
func (m Month) First() time.Time {
	return Date(m.Year, m.Month, 1)
}

// Last returns the last day of the month
func (m Month) Last() time.Time {
	return AddDays(m.Next().First(), -1)
}

// NumDays returns the number of days in the month
func (m Month) NumDays() int {
	return m.Last().Day()
}

// Days returns every day of the month in order
func (m Month) Days() []time.Time {
	days := make([]time.Time, m.NumDays())
	for i := range days {
		days[i] = Date(m.Year, m.Month, i+1)
	}
	return days
}

// Saturdays returns every Saturday of the month in order
func (m Month) Saturdays() []time.Time {
	var saturdays []time.Time
	for day := FirstSaturdayOnOrAfter(m.First()); m.Contains(day); day = AddDays(day, 7) {
		saturdays = append(saturdays, day)
	}
	return saturdays
}

// Contains reports whether t falls inside the month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Next returns the following month
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Prev returns the preceding month
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Before reports whether m is earlier than other
func (m Month) Before(other Month) bool {
	return m.First().Before(other.First())
}

// MonthRange returns every month from first to last inclusive.
// It returns nil when last is before first.
func MonthRange(first, last Month) []Month {
	var months []Month
	for m := first; !last.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}
