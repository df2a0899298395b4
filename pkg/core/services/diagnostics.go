package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/fairness"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// RunDiagnostics checks and scores every person for a Saturday, in roster order
func RunDiagnostics(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, saturday time.Time) ([]fairness.Diagnostic, error) {
	if err := requireSaturday(saturday); err != nil {
		return nil, err
	}

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	return diagnose(settings, state, saturday, logger)
}

// window composes the lookback months ending at the Saturday's month
func window(settings Settings, state overrides.State, saturday time.Time) (*compositor.Composition, error) {
	first, last := lookbackWindow(settings, saturday)
	comp, _, err := compose(settings, state, first, last)
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func diagnose(settings Settings, state overrides.State, saturday time.Time, logger *zap.Logger) ([]fairness.Diagnostic, error) {
	comp, err := window(settings, state, saturday)
	if err != nil {
		return nil, err
	}

	diagnostics := fairness.NewRanker(settings.Rules).Diagnose(comp.People, saturday)

	eligible := 0
	for _, d := range diagnostics {
		if d.Eligible {
			eligible++
		} else {
			logger.Debug("Eligibility check failed",
				zap.String("person", d.Person.Name),
				zap.String("check", d.FailedCheck),
				zap.String("reason", d.Reason))
		}
		logger.Debug("Diagnosed",
			zap.String("person", d.Person.Name),
			zap.Bool("eligible", d.Eligible),
			zap.Float64("score", d.Score))
	}
	logger.Debug("Diagnostics complete",
		zap.String("saturday", calendar.FormatDate(saturday)),
		zap.Int("people", len(diagnostics)),
		zap.Int("eligible", eligible))

	return diagnostics, nil
}

// bestCandidate ranks everyone in the lookback window and returns the winner
func bestCandidate(settings Settings, state overrides.State, saturday time.Time, logger *zap.Logger) (*fairness.Diagnostic, error) {
	comp, err := window(settings, state, saturday)
	if err != nil {
		return nil, err
	}

	best := fairness.NewRanker(settings.Rules).BestCandidate(comp.People, saturday)
	if best == nil {
		logger.Info("No eligible candidate", zap.String("saturday", calendar.FormatDate(saturday)))
		return nil, ErrNoEligibleCandidate
	}

	logger.Debug("Best candidate",
		zap.String("person", best.Person.Name),
		zap.Float64("score", best.Score),
		zap.Bool("never_worked", best.NeverWorked()))
	return best, nil
}

// SuggestCandidate returns the diagnostic of the person who should take the Saturday.
// Nothing is written.
func SuggestCandidate(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, saturday time.Time) (*fairness.Diagnostic, error) {
	if err := requireSaturday(saturday); err != nil {
		return nil, err
	}

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	return bestCandidate(settings, state, saturday, logger)
}

// Assignment is the result of AssignBestCandidate
type Assignment struct {
	Candidate fairness.Diagnostic
	Code      codes.Code
	Outcome   *overrides.Outcome
}

// AssignBestCandidate writes the assignment code for the best-ranked person on a Saturday.
// With nobody eligible it returns ErrNoEligibleCandidate and writes nothing.
func AssignBestCandidate(ctx context.Context, store EditStore, logger *zap.Logger, settings Settings, saturday, today time.Time) (*Assignment, error) {
	if err := requireSaturday(saturday); err != nil {
		return nil, err
	}

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	best, err := bestCandidate(settings, state, saturday, logger)
	if err != nil {
		return nil, err
	}

	code, err := codes.Parse(settings.Rules.AssignmentCode)
	if err != nil || code.IsEmpty() {
		return nil, fmt.Errorf("invalid assignment code %q", settings.Rules.AssignmentCode)
	}

	editor := overrides.NewEditor(state, settings.Rules)
	outcome, err := editor.Apply(overrides.Gesture{
		PersonID: best.Person.ID,
		Date:     saturday,
		Code:     code,
		Mode:     overrides.ModeDay,
	}, nil, today)
	if err != nil {
		return nil, fmt.Errorf("failed to assign %s: %w", best.Person.Name, err)
	}

	if err := store.ApplyOverrideChanges(ctx, db.ChangesFromOutcome(outcome)); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	logger.Info("Assigned Saturday",
		zap.String("saturday", calendar.FormatDate(saturday)),
		zap.String("person_id", best.Person.ID),
		zap.String("person", best.Person.Name),
		zap.String("code", code.String()),
		zap.String("last_worked", best.LastWorkedInfo))

	return &Assignment{Candidate: *best, Code: code, Outcome: outcome}, nil
}
