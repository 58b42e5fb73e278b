package core

import (
	"context"
	"time"

	"github.com/tobyward/taskroster/pkg/models"
)

// PersonStore is the persistence surface the registry needs. Defining it
// here keeps core independent of the storage package; the SQLite
// implementation lives in internal/storage.
//
// Every method is atomic: it either fully commits or has no effect, and it
// reports failures through the core error kinds (ErrValidation for a
// duplicate name, ErrNotFound for an unknown ID, ErrConflict for a delete
// blocked by a live task reference).
type PersonStore interface {
	Insert(ctx context.Context, name string, created time.Time) (*models.Person, error)
	Get(ctx context.Context, id int64) (*models.Person, error)
	GetAll(ctx context.Context) ([]models.Person, error)
	Rename(ctx context.Context, id int64, name string) (*models.Person, error)
	// Delete removes the person. The reference-count check and the row
	// delete execute in one transaction, backed by the store's foreign-key
	// constraint, so a concurrent assign can never sneak in a reference
	// between the check and the delete.
	Delete(ctx context.Context, id int64) error
}

// TaskStore is the persistence surface the task service and assignment
// coordinator need. Assignment writes are validated against the people set
// inside the same transaction (ErrNotFound when the target person does not
// exist at commit time).
type TaskStore interface {
	Insert(ctx context.Context, title string, assignee *int64, created time.Time) (*models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	MarkDone(ctx context.Context, id int64) (*models.Task, error)
	SetAssignee(ctx context.Context, id int64, assignee *int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	// List returns tasks newest-first by creation time, ties broken by
	// insertion order. For a FilterByPerson filter the person's existence is
	// verified in the same transaction as the read; an unknown person is
	// ErrNotFound, not an empty result.
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
}

// EventLogger is the subset of observability.EventLog the core services
// need. The context carries the request correlation ID when the call
// originated in the API layer. A nil EventLogger disables event emission.
type EventLogger interface {
	LogEvent(ctx context.Context, eventType string, data map[string]any) error
}
