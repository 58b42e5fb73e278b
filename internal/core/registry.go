package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tobyward/taskroster/pkg/models"
)

// PersonRegistry owns the roster of people tasks can be assigned to.
//
// Name uniqueness is exact-match and case-sensitive, applied identically to
// Add and Rename. Names are trimmed of surrounding whitespace before
// validation.
type PersonRegistry interface {
	Add(ctx context.Context, name string) (*models.Person, error)
	List(ctx context.Context) ([]models.Person, error)
	Get(ctx context.Context, id int64) (*models.Person, error)
	Rename(ctx context.Context, id int64, newName string) (*models.Person, error)
	Remove(ctx context.Context, id int64) error
}

type personRegistry struct {
	store  PersonStore
	events EventLogger
	now    func() time.Time
}

// NewPersonRegistry creates a PersonRegistry over the given store.
// events may be nil to disable event emission.
func NewPersonRegistry(store PersonStore, events EventLogger) PersonRegistry {
	return &personRegistry{store: store, events: events, now: time.Now}
}

func (r *personRegistry) Add(ctx context.Context, name string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validationf("person name must not be empty")
	}

	person, err := r.store.Insert(ctx, name, r.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("adding person: %w", err)
	}

	r.logEvent(ctx, "person.created", map[string]any{"person_id": person.ID, "name": person.Name})
	return person, nil
}

func (r *personRegistry) List(ctx context.Context) ([]models.Person, error) {
	people, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

func (r *personRegistry) Get(ctx context.Context, id int64) (*models.Person, error) {
	person, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}
	return person, nil
}

func (r *personRegistry) Rename(ctx context.Context, id int64, newName string) (*models.Person, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, Validationf("person name must not be empty")
	}

	person, err := r.store.Rename(ctx, id, newName)
	if err != nil {
		return nil, fmt.Errorf("renaming person %d: %w", id, err)
	}

	r.logEvent(ctx, "person.renamed", map[string]any{"person_id": person.ID, "name": person.Name})
	return person, nil
}

func (r *personRegistry) Remove(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing person %d: %w", id, err)
	}

	r.logEvent(ctx, "person.removed", map[string]any{"person_id": id})
	return nil
}

func (r *personRegistry) logEvent(ctx context.Context, eventType string, data map[string]any) {
	if r.events == nil {
		return
	}
	_ = r.events.LogEvent(ctx, eventType, data) // Event emission is best-effort.
}
