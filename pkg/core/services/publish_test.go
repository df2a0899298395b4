package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
)

var july = calendar.Month{Year: 2024, Month: time.July}

func TestExportMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "july.xlsx")

	require.NoError(t, ExportMonth(context.Background(), newTestStore(), zap.NewNop(), testSettings(), july, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "July 2024")
}

func TestPublishMonth(t *testing.T) {
	publisher := &mockPublisher{}

	table, err := PublishMonth(context.Background(), newTestStore(), publisher, zap.NewNop(), testSettings(), july, "sheet-123")
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", publisher.spreadsheetID)
	require.Len(t, publisher.tables, 1)
	assert.Same(t, table, publisher.tables[0])
	assert.Len(t, table.Rows, 3)
	assert.Len(t, table.Days, 31)
}

func TestPublishMonth_Errors(t *testing.T) {
	_, err := PublishMonth(context.Background(), newTestStore(), &mockPublisher{}, zap.NewNop(), testSettings(), july, "")
	assert.Error(t, err)

	publisher := &mockPublisher{err: errors.New("quota exceeded")}
	_, err = PublishMonth(context.Background(), newTestStore(), publisher, zap.NewNop(), testSettings(), july, "sheet-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
