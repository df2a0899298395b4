package compositor

import (
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/fairness"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// Inputs is one consistent snapshot of everything a schedule is derived from
type Inputs struct {
	// Roster in the order results should be reported
	Roster []model.Person

	// Holidays observed in the composed months (read-only)
	Holidays calendar.HolidayCalendar

	// Overrides are manual edits, applied last
	Overrides model.OverrideStore

	// Rules is the rule table used by the rotation and holiday layers
	Rules rules.RuleTable
}

// Composition is the derived schedule of every person over one or more whole months
type Composition struct {
	First  calendar.Month
	Last   calendar.Month
	People []model.PersonSchedule
}

// Lookup returns a person's composed schedule
func (c *Composition) Lookup(personID string) (model.PersonSchedule, bool) {
	for _, entry := range c.People {
		if entry.Person.ID == personID {
			return entry, true
		}
	}
	return model.PersonSchedule{}, false
}

// CodeOn returns a person's composed code for a date, rest if unknown
func (c *Composition) CodeOn(personID string, date time.Time) codes.Code {
	entry, ok := c.Lookup(personID)
	if !ok {
		return codes.Rest
	}
	return entry.Schedule.CodeOn(date)
}

// Covers reports whether the date lies inside the composed months
func (c *Composition) Covers(date time.Time) bool {
	return !date.Before(c.First.First()) && !date.After(c.Last.Last())
}

// layer overwrites cells of one month; later layers see earlier layers' output
type layer func(in Inputs, month calendar.Month, schedules map[string]model.DaySchedule)

// layers in application order
var layers = []layer{
	applyDefaultPattern,
	applyRotation,
	applyHolidays,
	applyOverrides,
}

// ComposeMonth builds the schedule of every person for one month.
// The result is a pure function of the inputs: composing twice gives equal output.
func ComposeMonth(in Inputs, month calendar.Month) *Composition {
	return ComposeWindow(in, month, month)
}

// ComposeWindow composes every month from first to last inclusive and merges the
// results, so that lookups can cross month boundaries
func ComposeWindow(in Inputs, first, last calendar.Month) *Composition {
	schedules := make(map[string]model.DaySchedule, len(in.Roster))
	for _, p := range in.Roster {
		schedules[p.ID] = make(model.DaySchedule)
	}

	for _, month := range calendar.MonthRange(first, last) {
		for _, apply := range layers {
			apply(in, month, schedules)
		}
	}

	people := make([]model.PersonSchedule, 0, len(in.Roster))
	for _, p := range in.Roster {
		people = append(people, model.PersonSchedule{Person: p, Schedule: schedules[p.ID]})
	}

	return &Composition{First: first, Last: last, People: people}
}

// applyDefaultPattern fills every day: B all month for people on leave,
// otherwise the default shift on weekdays and rest at weekends
func applyDefaultPattern(in Inputs, month calendar.Month, schedules map[string]model.DaySchedule) {
	for _, p := range in.Roster {
		schedule := schedules[p.ID]
		for _, day := range month.Days() {
			switch {
			case p.DefaultShift.IsLeave():
				schedule.Set(day, codes.Atomic(rules.LeaveCode))
			case calendar.IsWeekend(day):
				schedule.Set(day, codes.Rest)
			default:
				schedule.Set(day, p.DefaultShift.Code())
			}
		}
	}
}

// applyRotation gives each Saturday from the anchor onwards to the next person in the
// round-robin, but only where their cell is still plain rest
func applyRotation(in Inputs, month calendar.Month, schedules map[string]model.DaySchedule) {
	if in.Rules.AssignmentCode == "" {
		return
	}

	pool := fairness.RotationPool(in.Roster, in.Rules)
	anchor := fairness.RotationAnchor(in.Rules)

	for _, saturday := range month.Saturdays() {
		assignee, ok := fairness.RotationAssignee(pool, anchor, saturday)
		if !ok {
			continue
		}
		schedule := schedules[assignee.ID]
		if schedule.CodeOn(saturday).Is(rules.RestCode) {
			schedule.Set(saturday, codes.Atomic(in.Rules.AssignmentCode))
		}
	}
}

// applyHolidays overlays holidays on everyone not on leave. National and regional
// holidays always win; local holidays leave morning and afternoon shifts alone.
func applyHolidays(in Inputs, month calendar.Month, schedules map[string]model.DaySchedule) {
	for _, day := range month.Days() {
		kind, ok := in.Holidays.On(day)
		if !ok {
			continue
		}

		for _, p := range in.Roster {
			if p.DefaultShift.IsLeave() {
				continue
			}
			schedule := schedules[p.ID]

			switch kind {
			case calendar.KindNational, calendar.KindRegional:
				schedule.Set(day, codes.Atomic(string(kind)))
			case calendar.KindLocal:
				primary := schedule.CodeOn(day).Primary
				if primary != string(model.ShiftMorning) && primary != string(model.ShiftAfternoon) {
					schedule.Set(day, codes.Atomic(string(kind)))
				}
			}
		}
	}
}

// applyOverrides replaces whole cells with manual edits falling inside the month
func applyOverrides(in Inputs, month calendar.Month, schedules map[string]model.DaySchedule) {
	for _, p := range in.Roster {
		schedule := schedules[p.ID]
		for date, code := range in.Overrides.For(p.ID) {
			day, err := calendar.ParseDate(date)
			if err != nil || !month.Contains(day) {
				continue
			}
			schedule.Set(day, code)
		}
	}
}
