package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/fairness"
	"github.com/jakechorley/shift-planner/pkg/core/services"
)

// RunDiagnosticsCmd creates the runDiagnostics command
func RunDiagnosticsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runDiagnostics <saturday>",
		Short: "Explain who can work a Saturday, and how long since each person last did",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saturday, err := services.ParseDate(args[0])
			if err != nil {
				return err
			}

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			diagnostics, err := services.RunDiagnostics(app.Ctx, app.Database, app.Logger, settings, saturday)
			if err != nil {
				return err
			}

			fmt.Printf("\nDiagnostics for Saturday %s\n\n", calendar.FormatDate(saturday))
			fmt.Println(renderDiagnostics(diagnostics, fairness.Best(diagnostics)))
			return nil
		},
	}
}

// SuggestCandidateCmd creates the suggestCandidate command
func SuggestCandidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestCandidate <saturday>",
		Short: "Show who should take a Saturday, without assigning it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saturday, err := services.ParseDate(args[0])
			if err != nil {
				return err
			}

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			best, err := services.SuggestCandidate(app.Ctx, app.Database, app.Logger, settings, saturday)
			if errors.Is(err, services.ErrNoEligibleCandidate) {
				fmt.Printf("\nNobody is eligible on %s\n\n", calendar.FormatDate(saturday))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Suggested for %s: %s (%s)\n", checkMark, calendar.FormatDate(saturday), best.Person.Name, best.Person.ID)
			fmt.Printf("  %s\n\n", best.LastWorkedInfo)
			return nil
		},
	}
}

// AssignBestCandidateCmd creates the assignBestCandidate command
func AssignBestCandidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignBestCandidate <saturday>",
		Short: "Assign a Saturday to the person who has waited longest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saturday, err := services.ParseDate(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("assignBestCandidate command", zap.String("saturday", args[0]))

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			assignment, err := services.AssignBestCandidate(app.Ctx, app.Database, app.Logger, settings, saturday, time.Now())
			if errors.Is(err, services.ErrNoEligibleCandidate) {
				fmt.Printf("\nNobody is eligible on %s, nothing was assigned\n\n", calendar.FormatDate(saturday))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n%s %s assigned %s on %s\n", checkMark,
				assignment.Candidate.Person.Name, assignment.Code, calendar.FormatDate(saturday))
			fmt.Printf("  %s\n\n", assignment.Candidate.LastWorkedInfo)
			return nil
		},
	}
}
