package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/averix/kanvas/internal/access"
	"github.com/averix/kanvas/internal/dash"
	"github.com/averix/kanvas/internal/db"
	"github.com/averix/kanvas/internal/session"
	"github.com/averix/kanvas/internal/store"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Store    *store.Store
	Sessions *session.Manager
	Access   *access.Service
	Dash     *dash.Aggregator
	Log      *zap.Logger
	DataDir  string
	lockFile *flock.Flock
}

// Config holds application configuration
type Config struct {
	DataDir string
	DBPath  string
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	dataDir := db.DefaultDataDir()
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "kanvas.db"),
	}
}

// New creates a new application instance
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{DataDir: cfg.DataDir}

	// The TUI owns the terminal, so logs go to a file in the data dir.
	logger, err := newFileLogger(filepath.Join(cfg.DataDir, "kanvas.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	app.Log = logger

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Store = store.New(database)
	app.Sessions = session.NewManager(app.Store)
	app.Access = access.NewService(app.Store)
	app.Dash = dash.NewAggregator(app.Store, app.Access)

	app.Log.Info("app ready", zap.String("dataDir", cfg.DataDir))
	return app, nil
}

// newFileLogger builds a production zap logger writing to path.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "kanvas.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of kanvas is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if a.Log != nil {
		_ = a.Log.Sync()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
