package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// OverrideRequest is an edit as typed by the user
type OverrideRequest struct {
	PersonID string
	Date     string
	Code     string
	Mode     string
}

// ApplyOverride validates and performs an edit, then persists exactly what changed.
// A disallowed day-mode edit returns a *overrides.RejectionError and writes nothing.
func ApplyOverride(ctx context.Context, store EditStore, logger *zap.Logger, settings Settings, req OverrideRequest, today time.Time) (*overrides.Outcome, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	code, err := codes.Parse(req.Code)
	if err != nil {
		return nil, fmt.Errorf("invalid code %q: %w", req.Code, err)
	}
	if code.IsEmpty() {
		return nil, overrides.ErrEmptyCode
	}

	mode, err := overrides.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	logger.Debug("Applying override",
		zap.String("person_id", req.PersonID),
		zap.String("date", calendar.FormatDate(date)),
		zap.String("code", code.String()),
		zap.String("mode", string(mode)))

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	// The composed window must cover every day the gesture can touch
	first, last := calendar.MonthOf(date), calendar.MonthOf(date)
	if mode == overrides.ModeWeek {
		days := calendar.WeekDays(date)
		first, last = calendar.MonthOf(days[0]), calendar.MonthOf(days[len(days)-1])
	}
	comp, _, err := compose(settings, state, first, last)
	if err != nil {
		return nil, err
	}

	editor := overrides.NewEditor(state, settings.Rules)
	outcome, err := editor.Apply(overrides.Gesture{
		PersonID: req.PersonID,
		Date:     date,
		Code:     code,
		Mode:     mode,
	}, comp, today)
	if err != nil {
		return nil, err
	}

	if err := store.ApplyOverrideChanges(ctx, db.ChangesFromOutcome(outcome)); err != nil {
		return nil, fmt.Errorf("failed to save override: %w", err)
	}

	for _, skip := range outcome.Skipped {
		logger.Debug("Skipped day", zap.String("date", calendar.FormatDate(skip.Date)), zap.String("reason", skip.Reason))
	}
	if r := outcome.Reactivation; r != nil {
		logger.Info("Reactivated person",
			zap.String("person_id", r.PersonID),
			zap.String("shift", string(r.Shift)),
			zap.Int("purged", len(r.PurgedDates)))
	}
	logger.Info("Applied override",
		zap.String("person_id", outcome.PersonID),
		zap.Int("written", len(outcome.Written)),
		zap.Int("skipped", len(outcome.Skipped)))

	return outcome, nil
}

// Reactivate brings a person back from leave onto newShift, dropping their
// future leave overrides (dates after today)
func Reactivate(ctx context.Context, store EditStore, logger *zap.Logger, settings Settings, personID, newShift string, today time.Time) (*overrides.Reactivation, error) {
	shift, err := model.ParseShift(newShift)
	if err != nil {
		return nil, err
	}

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	reactivation, err := overrides.NewEditor(state, settings.Rules).Reactivate(personID, shift, today)
	if err != nil {
		return nil, err
	}

	changes := db.ChangesFromOutcome(&overrides.Outcome{PersonID: personID, Reactivation: reactivation})
	if err := store.ApplyOverrideChanges(ctx, changes); err != nil {
		return nil, fmt.Errorf("failed to save reactivation: %w", err)
	}

	logger.Info("Reactivated person",
		zap.String("person_id", personID),
		zap.String("previous", string(reactivation.Previous)),
		zap.String("shift", string(reactivation.Shift)),
		zap.Strings("purged", reactivation.PurgedDates))

	return reactivation, nil
}
