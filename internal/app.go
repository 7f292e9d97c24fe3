// Package internal provides the App struct that wires all components of the
// workshop evaluation tool together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"

	"github.com/juan-rv/tallereval/internal/cli"
	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/internal/integration"
	"github.com/juan-rv/tallereval/internal/observability"
	"github.com/juan-rv/tallereval/internal/storage"
)

// App holds all service dependencies for the workshop evaluation tool.
type App struct {
	BasePath string

	// Configuration
	Config *core.Config

	// Storage layer
	SessionStore storage.SessionStoreManager

	// Integration services
	Client *integration.EvaluationClient

	// Core services
	Orchestrator *core.Orchestrator

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the tool. basePath is the root
// directory where session data is stored (typically the directory containing
// .tallerrc.yaml, or the current directory).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.SessionStore = storage.NewSessionStoreManager(basePath, cfg.DefaultPopulation)

	// --- Integration services ---
	app.Client = integration.NewEvaluationClient(cfg.ServiceBaseURL, cfg.RequestTimeout)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".tallereval_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	var recorder core.EventLogger
	if app.EventLog != nil {
		recorder = observability.NewRecorder(app.EventLog)
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.Orchestrator = core.NewOrchestrator(app.Client, recorder)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.SessionStore = app.SessionStore
	cli.Service = app.Client
	cli.Orchestrator = app.Orchestrator
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the tool's data directory.
// It checks the TALLER_HOME env var, then walks up from the current directory
// looking for a .tallerrc.yaml file, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TALLER_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".tallerrc.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
