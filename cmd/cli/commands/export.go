package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/services"
)

// ExportMonthCmd creates the exportMonth command
func ExportMonthCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportMonth <YYYY-MM>",
		Short: "Write a month to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := calendar.ParseMonth(args[0])
			if err != nil {
				return fmt.Errorf("invalid month: %w", err)
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = fmt.Sprintf("schedule_%s.xlsx", month)
			}

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			if err := services.ExportMonth(app.Ctx, app.Database, app.Logger, settings, month, out); err != nil {
				return err
			}

			fmt.Printf("\n%s Exported %s to %s\n\n", checkMark, month, out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output path (default schedule_<YYYY-MM>.xlsx)")

	return cmd
}

// PublishMonthCmd creates the publishMonth command
func PublishMonthCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishMonth <YYYY-MM>",
		Short: "Publish a month to its own tab of the configured Google spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := calendar.ParseMonth(args[0])
			if err != nil {
				return fmt.Errorf("invalid month: %w", err)
			}

			app.Logger.Debug("publishMonth command", zap.String("month", month.String()))

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			table, err := services.PublishMonth(app.Ctx, app.Database, client, app.Logger, settings, month, app.Cfg.Publish.SpreadsheetID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Published %d rows to tab %q\n\n", checkMark, len(table.Rows), table.Title())
			return nil
		},
	}
}
