package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/fairness"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/core/services"
	"github.com/jakechorley/shift-planner/pkg/export"
)

const (
	checkMark = "✓"
	crossMark = "✗"

	nameWidth = 22
	cellWidth = 6
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	holidayStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FB923C"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	eligibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	blockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
)

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// cellStyle colours a cell with the legend colour of its primary code
func cellStyle(cell string) lipgloss.Style {
	style := lipgloss.NewStyle().Width(cellWidth)
	if item, ok := rules.LookupLegend(codes.Lookup(cell).Primary); ok {
		style = style.Background(lipgloss.Color(item.Color)).Foreground(lipgloss.Color("#111111"))
	}
	return style
}

func renderMonth(table *export.MonthTable) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(table.Title()))
	b.WriteString("\n\n")

	b.WriteString(pad("", nameWidth))
	for _, day := range table.Days {
		label := pad(day.Format("Mon"), cellWidth)
		if _, ok := table.Holidays.On(day); ok {
			label = holidayStyle.Width(cellWidth).Render(day.Format("Mon"))
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	b.WriteString(pad("", nameWidth))
	for _, day := range table.Days {
		b.WriteString(pad(day.Format("02"), cellWidth))
	}
	b.WriteString("\n")

	for _, row := range table.Rows {
		b.WriteString(pad(truncate(row.Person.Name, nameWidth-1), nameWidth))
		for _, cell := range row.Cells {
			b.WriteString(cellStyle(cell).Render(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderWeek(view *services.WeekViewResult) string {
	var b strings.Builder

	b.WriteString(pad("", nameWidth))
	for _, day := range view.Days {
		b.WriteString(headerStyle.Width(cellWidth + 4).Render(day.Format("Mon 02")))
	}
	b.WriteString("\n")

	for _, row := range view.Rows {
		b.WriteString(pad(truncate(row.Person.Name, nameWidth-1), nameWidth))
		for _, cell := range row.Cells {
			if len(cell.Halves) == 0 {
				b.WriteString(pad(cellStyle(cell.Code).Width(0).Render(cell.Code), cellWidth+4))
				continue
			}
			// Composite cells show each half in its own colour
			var halves []string
			for _, half := range cell.Halves {
				halves = append(halves, cellStyle(half).Width(0).Render(half))
			}
			b.WriteString(pad(strings.Join(halves, codes.Separator), cellWidth+4))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderDiagnostics(diagnostics []fairness.Diagnostic, best *fairness.Diagnostic) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(pad("Name", nameWidth) + pad("Eligible", 10) + pad("Score", 8) + "Details"))
	b.WriteString("\n")

	for _, d := range diagnostics {
		line := pad(truncate(d.Person.Name, nameWidth-1), nameWidth)
		if d.Eligible {
			line += eligibleStyle.Width(10).Render(checkMark)
		} else {
			line += blockedStyle.Width(10).Render(crossMark)
		}
		line += pad(formatScore(d), 8)

		if d.Eligible {
			line += d.LastWorkedInfo
		} else {
			line += dimStyle.Render(d.Reason)
		}

		if best != nil && d.Person.ID == best.Person.ID {
			line = bestStyle.Render(line + "  <- best")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if best == nil {
		b.WriteString("\nNobody is eligible.\n")
	}

	return b.String()
}

func formatScore(d fairness.Diagnostic) string {
	switch {
	case !d.Eligible:
		return "-"
	case d.NeverWorked():
		return "∞"
	default:
		return fmt.Sprintf("%.0f", d.Score)
	}
}

func renderOutcome(outcome *overrides.Outcome) string {
	var b strings.Builder

	if r := outcome.Reactivation; r != nil {
		fmt.Fprintf(&b, "\n%s %s reactivated: %s -> %s\n", checkMark, r.PersonID, r.Previous, r.Shift)
		if len(r.PurgedDates) > 0 {
			fmt.Fprintf(&b, "  Removed future leave on: %s\n", strings.Join(r.PurgedDates, ", "))
		}
	}

	if len(outcome.Written) > 0 {
		dates := make([]string, 0, len(outcome.Written))
		for date := range outcome.Written {
			dates = append(dates, date)
		}
		slices.Sort(dates)

		fmt.Fprintf(&b, "\n%s Wrote %d cell(s) for %s:\n", checkMark, len(dates), outcome.PersonID)
		for _, date := range dates {
			code := outcome.Written[date].String()
			fmt.Fprintf(&b, "  %s  %s\n", date, cellStyle(code).Render(code))
		}
	}

	if len(outcome.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped %d day(s):\n", len(outcome.Skipped))
		for _, skip := range outcome.Skipped {
			fmt.Fprintf(&b, "  %s  %s\n", calendar.FormatDate(skip.Date), dimStyle.Render(skip.Reason))
		}
	}

	if !outcome.Changed() {
		b.WriteString("\nNothing changed.\n")
	}

	return b.String()
}

func renderPeople(people []model.Person) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(pad("ID", 38) + pad("Name", nameWidth) + pad("Role", 10) + "Shift"))
	b.WriteString("\n")
	for _, p := range people {
		b.WriteString(pad(p.ID, 38) + pad(truncate(p.Name, nameWidth-1), nameWidth) + pad(p.Role, 10))
		b.WriteString(cellStyle(string(p.DefaultShift)).Render(string(p.DefaultShift)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
