package overrides

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// Mode selects how many days a gesture touches
type Mode string

const (
	ModeDay  Mode = "day"
	ModeWeek Mode = "week"
)

// ParseMode parses a gesture mode (case-insensitive)
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeDay, ModeWeek:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected day or week)", s)
	}
}

const (
	ReasonSunday       = "Sundays cannot be assigned"
	ReasonSaturdayCode = "only MS or TD can be assigned on a Saturday"
	ReasonReactivated  = "person was reactivated by this gesture"
)

// ErrEmptyCode is returned for gestures without a code
var ErrEmptyCode = errors.New("code is empty")

// RejectionError reports a single-day assignment that is not allowed.
// The editor state is unchanged when it is returned.
type RejectionError struct {
	Date   time.Time
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("assignment on %s rejected: %s", calendar.FormatDate(e.Date), e.Reason)
}

// CellSource supplies the current composed code of a cell
type CellSource interface {
	CodeOn(personID string, date time.Time) codes.Code

	// Covers reports whether CodeOn knows the date
	Covers(date time.Time) bool
}

// Gesture is one edit request from the user
type Gesture struct {
	PersonID string
	Date     time.Time
	Code     codes.Code
	Mode     Mode
}

// Skip is a week-mode day that was left alone
type Skip struct {
	Date   time.Time
	Reason string
}

// Reactivation records a person coming back from leave
type Reactivation struct {
	PersonID    string
	Previous    model.Shift
	Shift       model.Shift
	PurgedDates []string
}

// Outcome lists exactly what a gesture changed
type Outcome struct {
	PersonID     string
	Written      map[string]codes.Code
	Skipped      []Skip
	Reactivation *Reactivation
}

// Changed reports whether the gesture modified any state
func (o *Outcome) Changed() bool {
	return len(o.Written) > 0 || o.Reactivation != nil
}

// State is the mutable part of the planner: who is on the roster and the manual edits
type State struct {
	Roster    *model.Roster
	Overrides model.OverrideStore
}

// Editor applies gestures and reactivations to a State
type Editor struct {
	state State
	rules rules.RuleTable
}

// NewEditor creates an editor over the given state. The state is mutated in place.
func NewEditor(state State, rt rules.RuleTable) *Editor {
	if state.Overrides == nil {
		state.Overrides = model.OverrideStore{}
	}
	return &Editor{state: state, rules: rt}
}

// State returns the editor's current state
func (e *Editor) State() State {
	return e.state
}

// Apply performs a gesture. current supplies the composed value of each cell
// (permission toggles read it). Days it does not cover, or a nil source, read
// existing overrides only.
// In day mode a disallowed date returns a *RejectionError; in week mode it is skipped.
func (e *Editor) Apply(g Gesture, current CellSource, today time.Time) (*Outcome, error) {
	if g.Code.IsEmpty() {
		return nil, ErrEmptyCode
	}

	// Decisions use the person as they were when the gesture started
	person, ok := e.state.Roster.Get(g.PersonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPersonNotFound, g.PersonID)
	}

	var days []time.Time
	switch g.Mode {
	case ModeDay:
		days = []time.Time{calendar.Truncate(g.Date)}
	case ModeWeek:
		days = calendar.WeekDays(g.Date)
	default:
		return nil, fmt.Errorf("invalid mode %q", g.Mode)
	}

	outcome := &Outcome{PersonID: person.ID, Written: make(map[string]codes.Code)}

	for _, day := range days {
		if reason, allowed := e.allowed(day, g.Code); !allowed {
			if g.Mode == ModeDay {
				return nil, &RejectionError{Date: day, Reason: reason}
			}
			outcome.Skipped = append(outcome.Skipped, Skip{Date: day, Reason: reason})
			continue
		}

		if person.DefaultShift.IsLeave() && rules.IsPrimaryShift(g.Code.String()) {
			if outcome.Reactivation != nil {
				outcome.Skipped = append(outcome.Skipped, Skip{Date: day, Reason: ReasonReactivated})
				continue
			}
			reactivation, err := e.Reactivate(person.ID, model.Shift(g.Code.String()), today)
			if err != nil {
				return nil, err
			}
			outcome.Reactivation = reactivation
			continue
		}

		code := g.Code
		if g.Code.Is(rules.PermissionCode) {
			code = codes.TogglePermission(e.existing(current, person.ID, day))
		}

		e.state.Overrides.Set(person.ID, day, code)
		outcome.Written[calendar.FormatDate(day)] = code
	}

	return outcome, nil
}

// Reactivate brings a person back from leave: their default shift becomes newShift
// and overrides after today whose value is exactly B are dropped
func (e *Editor) Reactivate(personID string, newShift model.Shift, today time.Time) (*Reactivation, error) {
	if newShift.IsLeave() {
		return nil, fmt.Errorf("cannot reactivate %s onto leave", personID)
	}

	person, ok := e.state.Roster.Get(personID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPersonNotFound, personID)
	}

	if err := e.state.Roster.SetDefaultShift(personID, newShift); err != nil {
		return nil, err
	}

	today = calendar.Truncate(today)
	var purged []string
	for date, code := range e.state.Overrides.For(personID) {
		day, err := calendar.ParseDate(date)
		if err != nil || !day.After(today) {
			continue
		}
		if code.Is(rules.LeaveCode) {
			purged = append(purged, date)
		}
	}
	slices.Sort(purged)
	for _, date := range purged {
		e.state.Overrides.Delete(personID, date)
	}

	return &Reactivation{
		PersonID:    personID,
		Previous:    person.DefaultShift,
		Shift:       newShift,
		PurgedDates: purged,
	}, nil
}

// Removal reports what removing a person dropped
type Removal struct {
	Person    model.Person
	Overrides int
}

// Remove takes a person off the roster and drops every override they had
func (e *Editor) Remove(personID string) (*Removal, error) {
	person, ok := e.state.Roster.Get(personID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPersonNotFound, personID)
	}
	if err := e.state.Roster.Remove(personID); err != nil {
		return nil, err
	}

	dropped := len(e.state.Overrides.For(personID))
	e.state.Overrides.Purge(personID)
	return &Removal{Person: person, Overrides: dropped}, nil
}

// allowed applies the calendar restrictions shared by both modes
func (e *Editor) allowed(day time.Time, code codes.Code) (string, bool) {
	if calendar.IsSunday(day) {
		return ReasonSunday, false
	}
	if calendar.IsSaturday(day) && !e.rules.AcceptsOnSaturday(code.String()) {
		return ReasonSaturdayCode, false
	}
	return "", true
}

func (e *Editor) existing(current CellSource, personID string, day time.Time) codes.Code {
	if current != nil && current.Covers(day) {
		return current.CodeOn(personID, day)
	}
	if code, ok := e.state.Overrides.For(personID)[calendar.FormatDate(day)]; ok {
		return code.OrRest()
	}
	return codes.Rest
}
