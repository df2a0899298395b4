package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/db"
	"github.com/jakechorley/shift-planner/pkg/export"
)

// MonthPublisher pushes a month table to a spreadsheet
type MonthPublisher interface {
	PublishMonth(spreadsheetID string, table *export.MonthTable) error
}

func monthTable(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, month calendar.Month) (*export.MonthTable, error) {
	result, err := ComposeMonth(ctx, store, logger, settings, month)
	if err != nil {
		return nil, err
	}
	return export.BuildMonthTable(result.Composition, month, result.Holidays), nil
}

// ExportMonth writes the composed month to an xlsx workbook at path
func ExportMonth(ctx context.Context, store db.SnapshotStore, logger *zap.Logger, settings Settings, month calendar.Month, path string) error {
	table, err := monthTable(ctx, store, logger, settings, month)
	if err != nil {
		return err
	}

	if err := export.SaveXLSX(table, path); err != nil {
		return fmt.Errorf("failed to export %s: %w", month, err)
	}

	logger.Info("Exported month",
		zap.String("month", month.String()),
		zap.String("path", path),
		zap.Int("rows", len(table.Rows)))
	return nil
}

// PublishMonth writes the composed month to its own tab of a Google spreadsheet
func PublishMonth(ctx context.Context, store db.SnapshotStore, publisher MonthPublisher, logger *zap.Logger, settings Settings, month calendar.Month, spreadsheetID string) (*export.MonthTable, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet id configured")
	}

	table, err := monthTable(ctx, store, logger, settings, month)
	if err != nil {
		return nil, err
	}

	if err := publisher.PublishMonth(spreadsheetID, table); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", month, err)
	}

	logger.Info("Published month",
		zap.String("month", month.String()),
		zap.String("tab", table.Title()),
		zap.Int("rows", len(table.Rows)))
	return table, nil
}
