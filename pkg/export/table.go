package export

import (
	"fmt"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/compositor"
	"github.com/jakechorley/shift-planner/pkg/core/model"
)

// DayHeaderLayout formats day columns, e.g. "Mon 01"
const DayHeaderLayout = "Mon 02"

// MonthTable is a composed month laid out as a grid: one row per person, one column per day
type MonthTable struct {
	Month    calendar.Month
	Days     []time.Time
	Holidays calendar.HolidayCalendar
	Rows     []Row
}

// Row is one person's line of the grid
type Row struct {
	Person model.Person
	Cells  []string
}

// BuildMonthTable lays out a composition for one month, people sorted for display
func BuildMonthTable(comp *compositor.Composition, month calendar.Month, holidays calendar.HolidayCalendar) *MonthTable {
	days := month.Days()
	table := &MonthTable{Month: month, Days: days, Holidays: holidays}

	for _, entry := range compositor.SortForDisplay(comp.People) {
		cells := make([]string, len(days))
		for i, day := range days {
			cells[i] = entry.Schedule.CodeOn(day).String()
		}
		table.Rows = append(table.Rows, Row{Person: entry.Person, Cells: cells})
	}

	return table
}

// Title is the tab/sheet title for the month, e.g. "July 2024"
func (t *MonthTable) Title() string {
	return fmt.Sprintf("%s %d", t.Month.Month, t.Month.Year)
}

// Header returns the column headers: name, role, then one per day
func (t *MonthTable) Header() []string {
	header := []string{"Name", "Role"}
	for _, day := range t.Days {
		header = append(header, day.Format(DayHeaderLayout))
	}
	return header
}

// Values returns header and rows as generic cell values
func (t *MonthTable) Values() [][]interface{} {
	values := make([][]interface{}, 0, len(t.Rows)+1)

	header := make([]interface{}, 0, len(t.Days)+2)
	for _, h := range t.Header() {
		header = append(header, h)
	}
	values = append(values, header)

	for _, row := range t.Rows {
		line := make([]interface{}, 0, len(row.Cells)+2)
		line = append(line, row.Person.Name, row.Person.Role)
		for _, cell := range row.Cells {
			line = append(line, cell)
		}
		values = append(values, line)
	}

	return values
}
