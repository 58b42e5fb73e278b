package cli

import (
	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/internal/observability"
	"github.com/tobyward/taskroster/pkg/models"
)

// Service instances, set during app initialization in internal/app.go.
var (
	People      core.PersonRegistry
	Tasks       core.TaskService
	Coordinator core.AssignmentCoordinator
	Config      *models.Config

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
