// Package internal provides the App struct that wires all components of the
// task roster service together and initializes the CLI layer.
package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tobyward/taskroster/internal/cli"
	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/internal/observability"
	"github.com/tobyward/taskroster/internal/storage"
	"github.com/tobyward/taskroster/pkg/models"
)

// App holds all service dependencies for the task roster service.
type App struct {
	BasePath string
	Config   *models.Config

	// Storage layer
	DB *storage.DB

	// Core services
	People      core.PersonRegistry
	Tasks       core.TaskService
	Coordinator core.AssignmentCoordinator

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the task roster service.
// basePath is the directory holding the config file, the database, and the
// event log (relative paths in the config resolve against it).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfg, err := core.NewConfigurationManager(basePath).Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	app.Config = cfg

	// --- Storage layer ---
	app.DB, err = storage.Open(resolvePath(basePath, cfg.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	// --- Observability ---
	if cfg.EventLogPath != "" {
		app.EventLog, err = observability.NewJSONLEventLog(resolvePath(basePath, cfg.EventLogPath))
		if err != nil {
			// Non-fatal: disable event recording if the log can't be created.
			app.EventLog = nil
		}
	}
	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.People = core.NewPersonRegistry(app.DB.People(), events)
	app.Tasks = core.NewTaskService(app.DB.Tasks(), events)
	app.Coordinator = core.NewAssignmentCoordinator(app.DB.Tasks(), events)

	// --- Wire CLI package-level variables ---
	cli.Config = cfg
	cli.People = app.People
	cli.Tasks = app.Tasks
	cli.Coordinator = app.Coordinator
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App: the database handle and the
// event log file handle.
func (a *App) Close() error {
	var firstErr error
	if a.EventLog != nil {
		firstErr = a.EventLog.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveBasePath determines the base directory for taskroster data.
// It checks the TASKROSTER_HOME env var, then falls back to the current
// directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKROSTER_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// resolvePath resolves path against base unless it is already absolute.
func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(ctx context.Context, eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:      time.Now().UTC(),
		Type:      eventType,
		RequestID: observability.RequestIDFromContext(ctx),
		Data:      data,
	})
}
