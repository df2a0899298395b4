package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/export"
)

func TestA1Range(t *testing.T) {
	tests := []struct {
		name  string
		title string
		cells string
		want  string
	}{
		{"month title", "July 2024", "A1", "'July 2024'!A1"},
		{"range", "July 2024", "A1:ZZ", "'July 2024'!A1:ZZ"},
		{"quote is escaped", "Ana's tab", "A1", "'Ana''s tab'!A1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a1Range(tt.title, tt.cells))
		})
	}
}

func TestFindSheet(t *testing.T) {
	spreadsheet := &sheets.Spreadsheet{
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "June 2024", SheetId: 1}},
			{Properties: &sheets.SheetProperties{Title: "July 2024", SheetId: 2}},
		},
	}

	sheet := findSheet(spreadsheet, "July 2024")
	require.NotNil(t, sheet)
	assert.Equal(t, int64(2), sheet.Properties.SheetId)

	assert.Nil(t, findSheet(spreadsheet, "August 2024"))
}

func TestBuildRows(t *testing.T) {
	month := calendar.Month{Year: 2024, Month: time.July}
	in := compositor.Inputs{
		Roster: []model.Person{{ID: "p1", Name: "Ana", Role: "Agent", DefaultShift: model.ShiftMorning}},
		Rules:  rules.Default(),
	}
	table := export.BuildMonthTable(compositor.ComposeMonth(in, month), month, nil)

	rows := buildRows(table)

	require.Len(t, rows, headerRow+1)
	assert.Equal(t, []interface{}{"July 2024"}, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, "Name", rows[headerRow-1][0])
	assert.Equal(t, "Ana", rows[headerRow][0])
	assert.Len(t, rows[headerRow], 2+31)
}
