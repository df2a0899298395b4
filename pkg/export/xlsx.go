package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

const legendSheet = "Legend"

// SaveXLSX writes the table to an .xlsx file at path
func SaveXLSX(table *MonthTable, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if err := WriteXLSX(table, out); err != nil {
		return err
	}
	return out.Close()
}

// WriteXLSX renders the table as a workbook with a month sheet and a legend sheet
func WriteXLSX(table *MonthTable, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := table.Title()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	styles := newStyleCache(f)

	headerStyle, err := styles.get("#E6F3FF", true)
	if err != nil {
		return err
	}
	for col, header := range table.Header() {
		if err := setCell(f, sheetName, col+1, 1, header, headerStyle); err != nil {
			return err
		}
	}

	// Holiday columns get the holiday colour in the header
	for i, day := range table.Days {
		kind, ok := table.Holidays.On(day)
		if !ok {
			continue
		}
		item, _ := rules.LookupLegend(string(kind))
		style, err := styles.get(item.Color, true)
		if err != nil {
			return err
		}
		if err := setCell(f, sheetName, i+3, 1, day.Format(DayHeaderLayout), style); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		rowNum := r + 2
		if err := setCell(f, sheetName, 1, rowNum, row.Person.Name, 0); err != nil {
			return err
		}
		if err := setCell(f, sheetName, 2, rowNum, row.Person.Role, 0); err != nil {
			return err
		}
		for c, cell := range row.Cells {
			style, err := styles.get(cellColor(cell), false)
			if err != nil {
				return err
			}
			if err := setCell(f, sheetName, c+3, rowNum, cell, style); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 10); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      1,
		TopLeftCell: "C2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := writeLegend(f, styles); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeLegend(f *excelize.File, styles *styleCache) error {
	if _, err := f.NewSheet(legendSheet); err != nil {
		return fmt.Errorf("failed to create legend sheet: %w", err)
	}

	headerStyle, err := styles.get("#E6F3FF", true)
	if err != nil {
		return err
	}
	if err := setCell(f, legendSheet, 1, 1, "Code", headerStyle); err != nil {
		return err
	}
	if err := setCell(f, legendSheet, 2, 1, "Description", headerStyle); err != nil {
		return err
	}

	for i, item := range rules.Legend {
		style, err := styles.get(item.Color, false)
		if err != nil {
			return err
		}
		if err := setCell(f, legendSheet, 1, i+2, item.Code, style); err != nil {
			return err
		}
		if err := setCell(f, legendSheet, 2, i+2, item.Description, 0); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(legendSheet, "B", "B", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

// cellColor picks the legend colour of a cell's primary code
func cellColor(cell string) string {
	code := codes.Lookup(cell)
	if item, ok := rules.LookupLegend(code.Primary); ok {
		return item.Color
	}
	return ""
}

// styleCache creates each fill style once per workbook
type styleCache struct {
	f      *excelize.File
	styles map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, styles: make(map[string]int)}
}

func (c *styleCache) get(color string, bold bool) (int, error) {
	key := fmt.Sprintf("%s/%t", color, bold)
	if id, ok := c.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font: &excelize.Font{Bold: bold},
		Border: []excelize.Border{
			{Type: "left", Color: "D1D5DB", Style: 1},
			{Type: "top", Color: "D1D5DB", Style: 1},
			{Type: "bottom", Color: "D1D5DB", Style: 1},
			{Type: "right", Color: "D1D5DB", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}
	if color != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}

	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create style: %w", err)
	}
	c.styles[key] = id
	return id, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	if style == 0 {
		return nil
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return fmt.Errorf("failed to set style of %s: %w", cell, err)
	}
	return nil
}
