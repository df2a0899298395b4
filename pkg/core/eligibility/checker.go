package eligibility

import (
	"fmt"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// Reasons reported by the checker
const (
	ReasonEligible         = "eligible"
	ReasonSaturdayHoliday  = "holiday (FN/FA) on the Saturday"
	ReasonLeaveFriday      = "leave on Friday (with backtracking)"
	ReasonTrainingFriday   = "training on Friday (with backtracking)"
	ReasonVacationThuFri   = "vacation on Thursday and Friday"
	reasonRoleExcludedBase = "role excluded"
)

// Result is the outcome of checking one person for one Saturday
type Result struct {
	Person   model.Person
	Eligible bool
	Reason   string

	// FailedCheck is the Name of the check that failed, empty when eligible
	FailedCheck string
}

// Check is a single eligibility rule.
// Checks run in order and the first failing check decides the reason.
type Check interface {
	// Name identifies the check in logs
	Name() string

	// Evaluate returns ok=false and a reason when the person cannot work the Saturday
	Evaluate(entry model.PersonSchedule, saturday time.Time) (ok bool, reason string)
}

// Checker decides, per person, whether they may work a given Saturday
type Checker struct {
	checks []Check
}

// NewChecker creates a Checker running the standard checks in order:
// role exclusion, Saturday holiday, leave/training backtracking, Thursday+Friday vacation
func NewChecker(rt rules.RuleTable) *Checker {
	return &Checker{
		checks: []Check{
			roleCheck{rules: rt},
			saturdayHolidayCheck{rules: rt},
			backtrackCheck{name: "Leave", rules: rt, matches: rt.IsLeave, reason: ReasonLeaveFriday},
			backtrackCheck{name: "Training", rules: rt, matches: rt.IsTraining, reason: ReasonTrainingFriday},
			vacationCheck{rules: rt},
		},
	}
}

// Check evaluates one person. It never fails: problems are reported through the result.
func (c *Checker) Check(entry model.PersonSchedule, saturday time.Time) Result {
	saturday = calendar.Truncate(saturday)
	for _, check := range c.checks {
		if ok, reason := check.Evaluate(entry, saturday); !ok {
			return Result{Person: entry.Person, Eligible: false, Reason: reason, FailedCheck: check.Name()}
		}
	}
	return Result{Person: entry.Person, Eligible: true, Reason: ReasonEligible}
}

// CheckAll evaluates every person, preserving input order
func (c *Checker) CheckAll(entries []model.PersonSchedule, saturday time.Time) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		results = append(results, c.Check(entry, saturday))
	}
	return results
}

// codeText returns the upper-cased text of a cell, or "" when there is no entry
func codeText(schedule model.DaySchedule, day time.Time) string {
	code, ok := schedule.On(day)
	if !ok {
		return ""
	}
	return code.String()
}

type roleCheck struct {
	rules rules.RuleTable
}

func (c roleCheck) Name() string { return "RoleExclusion" }

func (c roleCheck) Evaluate(entry model.PersonSchedule, _ time.Time) (bool, string) {
	if c.rules.IsExcludedRole(entry.Person.Role) {
		return false, fmt.Sprintf("%s: %s", reasonRoleExcludedBase, c.rules.ExcludedRole)
	}
	return true, ""
}

type saturdayHolidayCheck struct {
	rules rules.RuleTable
}

func (c saturdayHolidayCheck) Name() string { return "SaturdayHoliday" }

func (c saturdayHolidayCheck) Evaluate(entry model.PersonSchedule, saturday time.Time) (bool, string) {
	if c.rules.IsNoSaturday(codeText(entry.Schedule, saturday)) {
		return false, ReasonSaturdayHoliday
	}
	return true, ""
}

// backtrackCheck walks back from the Friday before the Saturday, stepping over
// pass-through codes, and fails if the first other code matches.
type backtrackCheck struct {
	name    string
	rules   rules.RuleTable
	matches func(code string) bool
	reason  string
}

func (c backtrackCheck) Name() string { return c.name }

func (c backtrackCheck) Evaluate(entry model.PersonSchedule, saturday time.Time) (bool, string) {
	if FindBackwards(entry.Schedule, calendar.AddDays(saturday, -1), c.rules, c.matches) {
		return false, c.reason
	}
	return true, ""
}

// FindBackwards inspects start and, while the code there is a pass-through code,
// the days before it. It returns whether the first non-pass-through code matches.
// A missing or empty cell ends the search as not found, as does exceeding the
// rule table's lookback cap.
func FindBackwards(schedule model.DaySchedule, start time.Time, rt rules.RuleTable, matches func(code string) bool) bool {
	day := calendar.Truncate(start)
	for step := 0; step < rt.Lookback(); step++ {
		code := codeText(schedule, day)
		if code == "" {
			return false
		}
		if !rt.IsPassThrough(code) {
			return matches(code)
		}
		day = calendar.AddDays(day, -1)
	}
	return false
}

type vacationCheck struct {
	rules rules.RuleTable
}

func (c vacationCheck) Name() string { return "ThursdayFridayVacation" }

func (c vacationCheck) Evaluate(entry model.PersonSchedule, saturday time.Time) (bool, string) {
	friday := calendar.AddDays(saturday, -1)
	thursday := calendar.AddDays(saturday, -2)
	if c.rules.IsVacation(codeText(entry.Schedule, friday)) && c.rules.IsVacation(codeText(entry.Schedule, thursday)) {
		return false, ReasonVacationThuFri
	}
	return true, ""
}
