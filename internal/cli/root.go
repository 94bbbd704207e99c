// Package cli wires the banctl command tree.
//
// Commands return errors from RunE instead of exiting; main translates any
// error into exit code 1. The database handle is opened once per invocation
// before the subcommand runs and is closed by Execute on every exit path,
// including validation failures.
package cli

import (
	"database/sql"
	"fmt"

	"banctl/internal/admin"
	"banctl/internal/config"
	"banctl/internal/datastore"
	"banctl/internal/directory"
	"banctl/internal/logging"
	"banctl/internal/store"

	"github.com/spf13/cobra"
)

// App carries the per-invocation state shared by the subcommands.
type App struct {
	Logger *logging.AppLogger

	cfg   *config.Config
	db    *sql.DB
	admin *admin.Service

	dbPathFlag string
}

// NewApp creates the per-invocation application state.
func NewApp(logger *logging.AppLogger) *App {
	return &App{Logger: logger}
}

// NewRootCmd builds the banctl command tree over the app.
func (a *App) NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banctl",
		Short: "Administer ban and violation records for a chat deployment",
		Long: "banctl administers the abuse-control data of a chat deployment: a\n" +
			"namespaced violation store and the user directory it is keyed against.\n" +
			"It can clear, write, and inspect ban entries, and serve the same\n" +
			"operations to AI assistants over the Model Context Protocol.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPathFlag, "db", "",
		"path to the banctl SQLite database (overrides config)")

	rootCmd.AddCommand(
		newUnbanCmd(a),
		newBanCmd(a),
		newStatusCmd(a),
		newListCmd(a),
		newPurgeCmd(a),
		newUserAddCmd(a),
		newMCPCmd(a),
		newGuideCmd(a),
	)

	return rootCmd
}

// setup loads configuration and opens the backing store. Called once per
// invocation before the subcommand runs.
func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.dbPathFlag != "" {
		cfg.DBPath = a.dbPathFlag
	}
	a.cfg = cfg

	a.Logger.Debug("Opening database", "path", cfg.DBPath)

	db, err := datastore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open backing store: %w", err)
	}
	a.db = db

	a.admin = admin.NewService(
		directory.NewSQLiteDirectory(db),
		store.NewSQLiteStore(db),
		a.Logger,
	)

	return nil
}

// teardown releases the store handle. Idempotent and safe to call when
// setup never ran or failed partway.
func (a *App) teardown() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close backing store: %w", err)
	}
	a.db = nil
	return nil
}

// Execute runs the banctl command tree and returns its terminal error, if
// any. The store handle is released here rather than in a PostRun hook, so
// failed runs also close it. The caller maps a non-nil error to a non-zero
// process exit.
func Execute() error {
	app := NewApp(logging.NewAppLogger())

	runErr := app.NewRootCmd().Execute()
	if err := app.teardown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
