package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/db"
)

var (
	// ErrNoEligibleCandidate is returned when nobody can take a Saturday
	ErrNoEligibleCandidate = errors.New("no eligible candidate")

	// ErrNotSaturday is returned when a Saturday operation gets another weekday
	ErrNotSaturday = errors.New("date is not a Saturday")
)

// Settings carries the configured rules every service composes with
type Settings struct {
	Rules    rules.RuleTable
	Holidays []calendar.HolidayRule

	// LookbackMonths is how many months before the target month are composed,
	// so that backward searches and Saturday history can cross month boundaries
	LookbackMonths int
}

// EditStore defines the database operations needed to read state and persist edits
type EditStore interface {
	db.SnapshotStore
	ApplyOverrideChanges(ctx context.Context, changes db.OverrideChanges) error
}

// loadState reads the roster and overrides in one snapshot
func loadState(ctx context.Context, store db.SnapshotStore, logger *zap.Logger) (overrides.State, error) {
	logger.Debug("Fetching snapshot")
	snapshot, err := store.GetSnapshot(ctx)
	if err != nil {
		return overrides.State{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	state, err := snapshot.State()
	if err != nil {
		return overrides.State{}, fmt.Errorf("failed to load state: %w", err)
	}

	logger.Debug("Loaded snapshot",
		zap.Int("people", state.Roster.Len()),
		zap.Int("people_with_overrides", len(state.Overrides)))

	return state, nil
}

// compose builds the holiday calendar for the window and composes every month in it
func compose(settings Settings, state overrides.State, first, last calendar.Month) (*compositor.Composition, calendar.HolidayCalendar, error) {
	holidays, err := calendar.BuildHolidayCalendar(settings.Holidays, first.First(), last.Last())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build holiday calendar: %w", err)
	}

	in := compositor.Inputs{
		Roster:    state.Roster.People(),
		Holidays:  holidays,
		Overrides: state.Overrides,
		Rules:     settings.Rules,
	}
	return compositor.ComposeWindow(in, first, last), holidays, nil
}

// lookbackWindow returns the months composed for work on a date. The window
// always reaches as far back as the eligibility backward search can walk.
func lookbackWindow(settings Settings, date time.Time) (calendar.Month, calendar.Month) {
	last := calendar.MonthOf(date)
	first := last
	for i := 0; i < settings.LookbackMonths; i++ {
		first = first.Prev()
	}
	if earliest := calendar.MonthOf(calendar.AddDays(date, -settings.Rules.Lookback())); earliest.Before(first) {
		first = earliest
	}
	return first, last
}

// ParseDate parses a YYYY-MM-DD date argument
func ParseDate(s string) (time.Time, error) {
	date, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return date, nil
}

func requireSaturday(date time.Time) error {
	if !calendar.IsSaturday(date) {
		return fmt.Errorf("%w: %s is a %s", ErrNotSaturday, calendar.FormatDate(date), date.Weekday())
	}
	return nil
}
