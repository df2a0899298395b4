package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Kind is the scope of a holiday, which is also the code written into the schedule
type Kind string

const (
	KindNational Kind = "FN"
	KindRegional Kind = "FA"
	KindLocal    Kind = "FL"
)

// ParseKind parses a holiday kind (case-insensitive)
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindNational, KindRegional, KindLocal:
		return k, nil
	default:
		return "", fmt.Errorf("unknown holiday kind %q (expected FN, FA or FL)", s)
	}
}

// strength orders kinds when two holidays fall on the same date
func (k Kind) strength() int {
	switch k {
	case KindNational:
		return 3
	case KindRegional:
		return 2
	case KindLocal:
		return 1
	default:
		return 0
	}
}

// HolidayCalendar maps ISO dates to the holiday kind observed that day.
// It is read-only input to composition.
type HolidayCalendar map[string]Kind

// On returns the holiday kind for a date, if any
func (hc HolidayCalendar) On(t time.Time) (Kind, bool) {
	kind, ok := hc[FormatDate(t)]
	return kind, ok
}

// HolidayRule declares a holiday either on a fixed date or as an RRULE recurrence
type HolidayRule struct {
	Name  string
	Kind  Kind
	Date  string
	RRule string
}

// BuildHolidayCalendar expands holiday rules into concrete dates within [from, to].
// Recurrences without a DTSTART are anchored at from. When two holidays share a date
// the broader one wins (FN over FA over FL).
func BuildHolidayCalendar(holidayRules []HolidayRule, from, to time.Time) (HolidayCalendar, error) {
	from, to = Truncate(from), Truncate(to)
	calendar := make(HolidayCalendar)

	for i, rule := range holidayRules {
		dates, err := rule.occurrences(from, to)
		if err != nil {
			return nil, fmt.Errorf("holiday %d (%s): %w", i, rule.Name, err)
		}
		for _, date := range dates {
			key := FormatDate(date)
			if existing, ok := calendar[key]; ok && existing.strength() >= rule.Kind.strength() {
				continue
			}
			calendar[key] = rule.Kind
		}
	}

	return calendar, nil
}

// occurrences returns the dates of this rule inside [from, to]
func (r HolidayRule) occurrences(from, to time.Time) ([]time.Time, error) {
	if r.Date != "" {
		date, err := ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		if date.Before(from) || date.After(to) {
			return nil, nil
		}
		return []time.Time{date}, nil
	}

	if r.RRule == "" {
		return nil, fmt.Errorf("holiday needs either a date or an rrule")
	}

	option, err := rrule.StrToROption(r.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}
	if option.Dtstart.IsZero() {
		option.Dtstart = from
	}

	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}

	occurrences := rule.Between(from, AddDays(to, 1), true)
	dates := make([]time.Time, 0, len(occurrences))
	for _, occurrence := range occurrences {
		date := Truncate(occurrence)
		if date.After(to) {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}
