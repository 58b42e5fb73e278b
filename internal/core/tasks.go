package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tobyward/taskroster/pkg/models"
)

// TaskService owns the set of tasks: creation, completion, and deletion.
// Assignment changes and filtered listing go through the
// AssignmentCoordinator, which carries the cross-entity invariants.
type TaskService interface {
	Create(ctx context.Context, title string, assignee *int64) (*models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	// MarkDone is idempotent: completing an already-done task succeeds and
	// leaves the task done.
	MarkDone(ctx context.Context, id int64) (*models.Task, error)
	// Delete is unconditional for a known task; no referential constraint
	// blocks task deletion.
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	store  TaskStore
	events EventLogger
	now    func() time.Time
}

// NewTaskService creates a TaskService over the given store.
// events may be nil to disable event emission.
func NewTaskService(store TaskStore, events EventLogger) TaskService {
	return &taskService{store: store, events: events, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, title string, assignee *int64) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, Validationf("task title must not be empty")
	}

	task, err := s.store.Insert(ctx, title, assignee, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	data := map[string]any{"task_id": task.ID, "title": task.Title}
	if task.AssignedTo != nil {
		data["assigned_to_id"] = *task.AssignedTo
	}
	s.logEvent(ctx, "task.created", data)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return task, nil
}

func (s *taskService) MarkDone(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.store.MarkDone(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("completing task %d: %w", id, err)
	}

	s.logEvent(ctx, "task.done", map[string]any{"task_id": task.ID})
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}

	s.logEvent(ctx, "task.deleted", map[string]any{"task_id": id})
	return nil
}

func (s *taskService) logEvent(ctx context.Context, eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(ctx, eventType, data)
}
