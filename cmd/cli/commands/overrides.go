package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/services"
)

// ApplyOverrideCmd creates the applyOverride command
func ApplyOverrideCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applyOverride <person_id> <YYYY-MM-DD> <code>",
		Short: "Set a cell by hand (P toggles permission, --mode week fills Monday to Saturday)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")

			app.Logger.Debug("applyOverride command",
				zap.String("person_id", args[0]),
				zap.String("date", args[1]),
				zap.String("code", args[2]),
				zap.String("mode", mode))

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			outcome, err := services.ApplyOverride(app.Ctx, app.Database, app.Logger, settings, services.OverrideRequest{
				PersonID: args[0],
				Date:     args[1],
				Code:     args[2],
				Mode:     mode,
			}, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(renderOutcome(outcome))
			return nil
		},
	}

	cmd.Flags().String("mode", "day", "Gesture mode: day or week")

	return cmd
}

// ReactivateCmd creates the reactivate command
func ReactivateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <person_id> <M|T|JF>",
		Short: "Bring a person back from leave onto a new default shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings()
			if err != nil {
				return err
			}

			reactivation, err := services.Reactivate(app.Ctx, app.Database, app.Logger, settings, args[0], args[1], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n%s %s reactivated: %s -> %s\n", checkMark, reactivation.PersonID, reactivation.Previous, reactivation.Shift)
			if len(reactivation.PurgedDates) > 0 {
				fmt.Printf("  Removed future leave on: %v\n", reactivation.PurgedDates)
			}
			fmt.Println()
			return nil
		},
	}
}
