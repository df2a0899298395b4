package sheetsclient

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/shift-planner/pkg/export"
)

// headerRow is the 1-based row holding the column headers; a title line and a gap sit above it
const headerRow = 3

// PublishMonth writes a composed month to a tab named after the month, e.g. "July 2024".
// A missing tab is created; an existing one is cleared and rewritten.
func (c *Client) PublishMonth(spreadsheetID string, table *export.MonthTable) error {
	tabTitle := table.Title()

	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	if findSheet(spreadsheet, tabTitle) == nil {
		c.logger.Debug("Creating tab", zap.String("tab", tabTitle))
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else {
		c.logger.Debug("Clearing existing tab", zap.String("tab", tabTitle))
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, a1Range(tabTitle, "A1:ZZ"), &sheets.ClearValuesRequest{}).Do()
		if err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	}

	valueRange := &sheets.ValueRange{Values: buildRows(table)}
	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, a1Range(tabTitle, "A1"), valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write month to tab: %w", err)
	}

	c.logger.Info("Published month",
		zap.String("tab", tabTitle),
		zap.Int("people", len(table.Rows)))

	return nil
}

// buildRows lays out the tab: title, empty row, header, then one row per person
func buildRows(table *export.MonthTable) [][]interface{} {
	rows := [][]interface{}{
		{table.Title()},
		{},
	}
	return append(rows, table.Values()...)
}

// findSheet returns the tab with the given title, or nil
func findSheet(spreadsheet *sheets.Spreadsheet, title string) *sheets.Sheet {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet
		}
	}
	return nil
}

// a1Range quotes a tab title for A1 notation, e.g. 'July 2024'!A1
func a1Range(tabTitle, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(tabTitle, "'", "''"), cells)
}
