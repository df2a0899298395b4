package fairness

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/eligibility"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// IneligibleScore is the score reported for people who failed an eligibility check
const IneligibleScore = -1

// Diagnostic is the per-person report for a Saturday
type Diagnostic struct {
	Person   model.Person
	Eligible bool
	Reason   string

	// FailedCheck names the eligibility check that ruled the person out
	FailedCheck string

	// Score is the number of Saturdays since the person last worked one.
	// +Inf means they never worked a Saturday; IneligibleScore for ineligible people.
	Score float64

	// LastWorked is the last Saturday worked before the target (nil if never or not ranked)
	LastWorked *time.Time

	// LastWorkedInfo is a human-readable summary of LastWorked and Score
	LastWorkedInfo string
}

// NeverWorked reports whether the person has no Saturday on record
func (d Diagnostic) NeverWorked() bool {
	return math.IsInf(d.Score, 1)
}

// Ranker scores eligible people by how long ago they last worked a Saturday
type Ranker struct {
	rules   rules.RuleTable
	checker *eligibility.Checker
}

// NewRanker creates a Ranker with the standard eligibility checks
func NewRanker(rt rules.RuleTable) *Ranker {
	return &Ranker{
		rules:   rt,
		checker: eligibility.NewChecker(rt),
	}
}

// Diagnose checks and scores every person for the Saturday, in input order
func (r *Ranker) Diagnose(entries []model.PersonSchedule, saturday time.Time) []Diagnostic {
	saturday = calendar.Truncate(saturday)
	results := r.checker.CheckAll(entries, saturday)
	knownDates := KnownDates(entries)

	diagnostics := make([]Diagnostic, 0, len(results))
	for i, result := range results {
		d := Diagnostic{
			Person:      result.Person,
			Eligible:    result.Eligible,
			Reason:      result.Reason,
			FailedCheck: result.FailedCheck,
			Score:       IneligibleScore,
		}

		if !result.Eligible {
			d.LastWorkedInfo = "not ranked"
			diagnostics = append(diagnostics, d)
			continue
		}

		lastWorked, found := r.lastWorkedSaturday(entries[i].Schedule, knownDates, saturday)
		if !found {
			d.Score = math.Inf(1)
			d.LastWorkedInfo = "never worked a Saturday: top priority"
		} else {
			since := SaturdaysBetween(lastWorked, saturday)
			d.Score = float64(since)
			d.LastWorked = &lastWorked
			d.LastWorkedInfo = fmt.Sprintf("last Saturday worked: %s, Saturdays since: %d",
				calendar.FormatDate(lastWorked), since)
		}
		diagnostics = append(diagnostics, d)
	}

	return diagnostics
}

// BestCandidate returns the diagnostic of the eligible person with the highest score.
// Ties go to whoever comes first in the input. Returns nil if nobody is eligible.
func (r *Ranker) BestCandidate(entries []model.PersonSchedule, saturday time.Time) *Diagnostic {
	return Best(r.Diagnose(entries, saturday))
}

// Best picks the eligible diagnostic with the maximum score, first one winning ties
func Best(diagnostics []Diagnostic) *Diagnostic {
	var best *Diagnostic
	for i := range diagnostics {
		d := &diagnostics[i]
		if !d.Eligible {
			continue
		}
		if best == nil || d.Score > best.Score {
			best = d
		}
	}
	return best
}

// lastWorkedSaturday scans known dates, newest first, for the latest Saturday strictly
// before the target on which the schedule holds a Saturday-workable code
func (r *Ranker) lastWorkedSaturday(schedule model.DaySchedule, knownDates []time.Time, before time.Time) (time.Time, bool) {
	for _, date := range knownDates {
		if !calendar.IsSaturday(date) || !date.Before(before) {
			continue
		}
		code, ok := schedule.On(date)
		if ok && r.rules.IsSaturdayWorked(code.String()) {
			return date, true
		}
	}
	return time.Time{}, false
}

// KnownDates returns every date present in any schedule, deduplicated, newest first.
// Keys that aren't valid dates are ignored.
func KnownDates(entries []model.PersonSchedule) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, entry := range entries {
		for key := range entry.Schedule {
			if seen[key] {
				continue
			}
			seen[key] = true
			date, err := calendar.ParseDate(key)
			if err != nil {
				continue
			}
			dates = append(dates, date)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})
	return dates
}

// SaturdaysBetween counts the Saturdays strictly between from and to
func SaturdaysBetween(from, to time.Time) int {
	count := 0
	for day := calendar.AddDays(calendar.Truncate(from), 1); day.Before(calendar.Truncate(to)); day = calendar.AddDays(day, 1) {
		if calendar.IsSaturday(day) {
			count++
		}
	}
	return count
}
