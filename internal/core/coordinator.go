package core

import (
	"context"
	"fmt"

	"github.com/tobyward/taskroster/pkg/models"
)

// AssignmentCoordinator is the cross-cutting logic binding tasks to people:
// it validates assignment targets, replaces any prior assignment atomically,
// and implements the filtered listing.
type AssignmentCoordinator interface {
	// Assign sets the task's assignee, replacing any prior assignment
	// (last-writer-wins at single-task granularity). A nil personID clears
	// the assignment and always succeeds for a known task.
	Assign(ctx context.Context, taskID int64, personID *int64) (*models.Task, error)
	// Filter lists tasks matching the filter, newest-first. Filtering by a
	// person that does not exist is ErrNotFound rather than an empty
	// result, to surface stale client state early.
	Filter(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
}

type assignmentCoordinator struct {
	tasks  TaskStore
	events EventLogger
}

// NewAssignmentCoordinator creates an AssignmentCoordinator over the given
// task store. events may be nil to disable event emission.
func NewAssignmentCoordinator(tasks TaskStore, events EventLogger) AssignmentCoordinator {
	return &assignmentCoordinator{tasks: tasks, events: events}
}

func (c *assignmentCoordinator) Assign(ctx context.Context, taskID int64, personID *int64) (*models.Task, error) {
	task, err := c.tasks.SetAssignee(ctx, taskID, personID)
	if err != nil {
		return nil, fmt.Errorf("assigning task %d: %w", taskID, err)
	}

	if personID != nil {
		c.logEvent(ctx, "task.assigned", map[string]any{"task_id": task.ID, "person_id": *personID})
	} else {
		c.logEvent(ctx, "task.unassigned", map[string]any{"task_id": task.ID})
	}
	return task, nil
}

func (c *assignmentCoordinator) Filter(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := c.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (c *assignmentCoordinator) logEvent(ctx context.Context, eventType string, data map[string]any) {
	if c.events == nil {
		return
	}
	_ = c.events.LogEvent(ctx, eventType, data)
}
