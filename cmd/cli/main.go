package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/cmd/cli/commands"
	"github.com/jakechorley/shift-planner/internal/config"
	"github.com/jakechorley/shift-planner/pkg/db"
	"github.com/jakechorley/shift-planner/pkg/postgres"
	"github.com/jakechorley/shift-planner/pkg/sqlite"
	"github.com/jakechorley/shift-planner/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	logDir  string
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shift-planner",
		Short: "Shift Planner CLI - Compose monthly schedules and share out Saturdays fairly",
		Long: `A CLI tool for composing monthly shift schedules from default shifts, holidays and
manual overrides, and for choosing who works each Saturday.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for log files")

	rootCmd.AddCommand(commands.ComposeMonthCmd(app))
	rootCmd.AddCommand(commands.ViewWeekCmd(app))
	rootCmd.AddCommand(commands.RunDiagnosticsCmd(app))
	rootCmd.AddCommand(commands.SuggestCandidateCmd(app))
	rootCmd.AddCommand(commands.AssignBestCandidateCmd(app))
	rootCmd.AddCommand(commands.ApplyOverrideCmd(app))
	rootCmd.AddCommand(commands.ReactivateCmd(app))
	rootCmd.AddCommand(commands.AddPersonCmd(app))
	rootCmd.AddCommand(commands.RemovePersonCmd(app))
	rootCmd.AddCommand(commands.ListPeopleCmd(app))
	rootCmd.AddCommand(commands.ImportRosterCmd(app))
	rootCmd.AddCommand(commands.ExportMonthCmd(app))
	rootCmd.AddCommand(commands.PublishMonthCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the store
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, logging.Options{Dir: logDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Database, err = openStore(app.Ctx, app.Cfg.Store, app.Logger)
	if err != nil {
		return err
	}

	return nil
}

// openStore connects to the configured store, running migrations for postgres
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (db.Database, error) {
	logger.Debug("Connecting to database", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverSQLite:
		database, err := sqlite.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Debug("Database initialized successfully", zap.String("path", database.Path()))
		return database, nil

	case config.DriverPostgres:
		database, err := postgres.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.Debug("Running migrations")
		if err := database.RunMigrations(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Debug("Database initialized successfully")
		return database, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
