package commands

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/fairness"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/core/services"
	"github.com/jakechorley/shift-planner/pkg/export"
)

func TestRenderMonth(t *testing.T) {
	month := calendar.Month{Year: 2024, Month: time.July}
	comp := compositor.ComposeMonth(compositor.Inputs{
		Roster: []model.Person{
			{ID: "p1", Name: "Ana", Role: "Agent", DefaultShift: model.ShiftMorning},
			{ID: "p2", Name: "Carlos", Role: "Agent", DefaultShift: model.ShiftLeave},
		},
		Rules: rules.RuleTable{},
	}, month)

	out := renderMonth(export.BuildMonthTable(comp, month, nil))

	assert.Contains(t, out, "July 2024")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Carlos")
	assert.Contains(t, out, "31")
}

func TestRenderWeek(t *testing.T) {
	view := &services.WeekViewResult{
		Days: calendar.WeekDays(calendar.Date(2024, time.July, 10)),
		Rows: []services.WeekRow{{
			Person: model.Person{ID: "p1", Name: "Ana"},
			Cells: []services.WeekCell{
				{Code: "M/P", Halves: []string{"M", "P"}},
				{Code: "D"},
			},
		}},
	}

	out := renderWeek(view)
	assert.Contains(t, out, "Mon 08")
	assert.Contains(t, out, "Sun 14")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "/")
}

func TestRenderDiagnostics(t *testing.T) {
	lastWorked := calendar.Date(2024, time.July, 6)
	diagnostics := []fairness.Diagnostic{
		{Person: model.Person{ID: "p1", Name: "Ana"}, Eligible: true, Score: 0, LastWorked: &lastWorked, LastWorkedInfo: "last Saturday worked: 2024-07-06, Saturdays since: 0"},
		{Person: model.Person{ID: "p2", Name: "Carlos"}, Eligible: true, Score: math.Inf(1), LastWorkedInfo: "never worked a Saturday: top priority"},
		{Person: model.Person{ID: "p3", Name: "Laura"}, Eligible: false, Reason: "excluded role", Score: fairness.IneligibleScore},
	}

	out := renderDiagnostics(diagnostics, fairness.Best(diagnostics))
	assert.Contains(t, out, "∞")
	assert.Contains(t, out, "excluded role")
	assert.Contains(t, out, "<- best")
	assert.NotContains(t, out, "Nobody is eligible")

	out = renderDiagnostics(diagnostics[2:], nil)
	assert.Contains(t, out, "Nobody is eligible")
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "-", formatScore(fairness.Diagnostic{Eligible: false, Score: -1}))
	assert.Equal(t, "∞", formatScore(fairness.Diagnostic{Eligible: true, Score: math.Inf(1)}))
	assert.Equal(t, "3", formatScore(fairness.Diagnostic{Eligible: true, Score: 3}))
}

func TestRenderOutcome(t *testing.T) {
	outcome := &overrides.Outcome{
		PersonID: "p1",
		Written: map[string]codes.Code{
			"2024-07-09": codes.MustParse("TD"),
			"2024-07-08": codes.MustParse("TD"),
		},
		Skipped: []overrides.Skip{{Date: calendar.Date(2024, time.July, 14), Reason: overrides.ReasonSunday}},
	}

	out := renderOutcome(outcome)
	assert.Contains(t, out, "Wrote 2 cell(s) for p1")
	assert.Less(t, strings.Index(out, "2024-07-08"), strings.Index(out, "2024-07-09"), "dates are sorted")
	assert.Contains(t, out, overrides.ReasonSunday)

	out = renderOutcome(&overrides.Outcome{PersonID: "p1", Written: map[string]codes.Code{}})
	assert.Contains(t, out, "Nothing changed")

	out = renderOutcome(&overrides.Outcome{
		PersonID:     "p4",
		Written:      map[string]codes.Code{},
		Reactivation: &overrides.Reactivation{PersonID: "p4", Previous: model.ShiftLeave, Shift: model.ShiftAfternoon, PurgedDates: []string{"2024-07-15"}},
	})
	assert.Contains(t, out, "p4 reactivated: B -> T")
	assert.Contains(t, out, "2024-07-15")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Ana", truncate("Ana", 5))
	assert.Equal(t, "Mari…", truncate("Maria Jose", 5))
}
