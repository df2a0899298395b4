package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/services"
	"github.com/jakechorley/shift-planner/pkg/export"
)

// ComposeMonthCmd creates the composeMonth command
func ComposeMonthCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "composeMonth <YYYY-MM>",
		Short: "Show everyone's composed schedule for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := calendar.ParseMonth(args[0])
			if err != nil {
				return fmt.Errorf("invalid month: %w", err)
			}

			app.Logger.Debug("composeMonth command", zap.String("month", month.String()))

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			result, err := services.ComposeMonth(app.Ctx, app.Database, app.Logger, settings, month)
			if err != nil {
				return err
			}

			fmt.Println(renderMonth(export.BuildMonthTable(result.Composition, month, result.Holidays)))
			return nil
		},
	}
}

// ViewWeekCmd creates the viewWeek command
func ViewWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewWeek <YYYY-MM-DD>",
		Short: "Show the Monday to Sunday week containing a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := services.ParseDate(args[0])
			if err != nil {
				return err
			}

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			view, err := services.WeekView(app.Ctx, app.Database, app.Logger, settings, date)
			if err != nil {
				return err
			}

			fmt.Println(renderWeek(view))
			return nil
		},
	}
}
