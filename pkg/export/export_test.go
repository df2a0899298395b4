package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

var july = calendar.Month{Year: 2024, Month: time.July}

func buildTable(t *testing.T) *MonthTable {
	t.Helper()
	overrides := model.OverrideStore{}
	overrides.Set("p1", calendar.Date(2024, time.July, 10), codes.MustParse("M/P"))

	holidays := calendar.HolidayCalendar{"2024-07-25": calendar.KindRegional}
	in := compositor.Inputs{
		Roster: []model.Person{
			{ID: "p2", Name: "Sofia", Role: "Agent", DefaultShift: model.ShiftAfternoon},
			{ID: "p1", Name: "Ana", Role: "Agent", DefaultShift: model.ShiftMorning},
		},
		Holidays:  holidays,
		Overrides: overrides,
		Rules:     rules.Default(),
	}
	return BuildMonthTable(compositor.ComposeMonth(in, july), july, holidays)
}

func TestBuildMonthTable(t *testing.T) {
	table := buildTable(t)

	assert.Equal(t, "July 2024", table.Title())
	assert.Len(t, table.Days, 31)

	header := table.Header()
	require.Len(t, header, 33)
	assert.Equal(t, []string{"Name", "Role", "Mon 01"}, header[:3])

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Ana", table.Rows[0].Person.Name, "morning shift sorts first")
	assert.Equal(t, "M/P", table.Rows[0].Cells[9])
	assert.Equal(t, "FA", table.Rows[1].Cells[24])

	values := table.Values()
	require.Len(t, values, 3)
	assert.Equal(t, "Sofia", values[2][0])
	assert.Equal(t, "T", values[2][2])
}

func TestWriteXLSX(t *testing.T) {
	table := buildTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(table, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"July 2024", "Legend"}, f.GetSheetList())

	rows, err := f.GetRows("July 2024")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Ana", rows[1][0])
	assert.Equal(t, "M/P", rows[1][11])

	legend, err := f.GetRows("Legend")
	require.NoError(t, err)
	assert.Len(t, legend, len(rules.Legend)+1)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "july.xlsx")
	require.NoError(t, SaveXLSX(buildTable(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("July 2024", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Mon 01", value)
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, "#FEF08A", cellColor("M/P"))
	assert.Equal(t, "#2DD4BF", cellColor("MS"))
	assert.Equal(t, "", cellColor("ZZ"))
}
