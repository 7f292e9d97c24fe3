package cli

import (
	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/internal/observability"
	"github.com/juan-rv/tallereval/internal/storage"
)

// Service dependencies, set during app initialization in app.go.
var (
	BasePath     string
	Config       *core.Config
	SessionStore storage.SessionStoreManager
	Orchestrator *core.Orchestrator
	Service      core.EvaluationService

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
