package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/utils"
)

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved Google token so the next publish signs in again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.ClearToken()
			if err := utils.DeleteTokenFile(app.Env); err != nil {
				return err
			}
			app.sheetsClient = nil

			app.Logger.Info("Removed saved token", zap.String("env", app.Env))
			fmt.Printf("\n%s Signed out of Google for %s\n\n", checkMark, app.Env)
			return nil
		},
	}
}
