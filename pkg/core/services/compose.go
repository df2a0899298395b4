package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// MonthResult is a composed month ready for display
type MonthResult struct {
	Month       calendar.Month
	Composition *compositor.Composition
	Holidays    calendar.HolidayCalendar
}

// ComposeMonth derives every person's schedule for a month
func ComposeMonth(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, month calendar.Month) (*MonthResult, error) {
	logger.Debug("Composing month", zap.String("month", month.String()))

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	comp, holidays, err := compose(settings, state, month, month)
	if err != nil {
		return nil, err
	}

	logger.Debug("Composed month",
		zap.String("month", month.String()),
		zap.Int("people", len(comp.People)),
		zap.Int("holidays", len(holidays)))

	return &MonthResult{Month: month, Composition: comp, Holidays: holidays}, nil
}

// WeekCell is one day of a week view. Halves is set for composite codes only.
type WeekCell struct {
	Date   time.Time
	Code   string
	Halves []string
}

// WeekRow is one person's week
type WeekRow struct {
	Person model.Person
	Cells  []WeekCell
}

// WeekViewResult is the Monday to Sunday view of the week containing a date
type WeekViewResult struct {
	Days []time.Time
	Rows []WeekRow
}

// WeekView composes the week containing date, people sorted for display
func WeekView(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, date time.Time) (*WeekViewResult, error) {
	days := calendar.WeekDays(date)
	logger.Debug("Building week view",
		zap.String("from", calendar.FormatDate(days[0])),
		zap.String("to", calendar.FormatDate(days[len(days)-1])))

	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	comp, _, err := compose(settings, state, calendar.MonthOf(days[0]), calendar.MonthOf(days[len(days)-1]))
	if err != nil {
		return nil, fmt.Errorf("failed to compose week: %w", err)
	}

	result := &WeekViewResult{Days: days}
	for _, entry := range compositor.SortForDisplay(comp.People) {
		row := WeekRow{Person: entry.Person}
		for _, day := range days {
			code := entry.Schedule.CodeOn(day)
			cell := WeekCell{Date: day, Code: code.String()}
			if code.IsComposite() {
				cell.Halves = code.Halves()
			}
			row.Cells = append(row.Cells, cell)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}
