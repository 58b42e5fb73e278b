package core

import (
	"context"
	"sort"
	"time"

	"github.com/tobyward/taskroster/pkg/models"
)

// fakePersonStore is an in-memory PersonStore mirroring the SQLite
// implementation's error behavior.
type fakePersonStore struct {
	people map[int64]*models.Person
	refs   map[int64]int // assignment counts, set by tests
	nextID int64
	err    error // forced error for every call when non-nil
}

func newFakePersonStore() *fakePersonStore {
	return &fakePersonStore{
		people: make(map[int64]*models.Person),
		refs:   make(map[int64]int),
	}
}

func (s *fakePersonStore) Insert(ctx context.Context, name string, created time.Time) (*models.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.people {
		if p.Name == name {
			return nil, DuplicateNamef("person %q already exists", name)
		}
	}
	s.nextID++
	p := &models.Person{ID: s.nextID, Name: name, Created: created}
	s.people[p.ID] = p
	return p, nil
}

func (s *fakePersonStore) Get(ctx context.Context, id int64) (*models.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.people[id]
	if !ok {
		return nil, NotFoundf("person %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (s *fakePersonStore) GetAll(ctx context.Context) ([]models.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakePersonStore) Rename(ctx context.Context, id int64, name string) (*models.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.people[id]
	if !ok {
		return nil, NotFoundf("person %d not found", id)
	}
	for _, other := range s.people {
		if other.ID != id && other.Name == name {
			return nil, DuplicateNamef("person %q already exists", name)
		}
	}
	p.Name = name
	cp := *p
	return &cp, nil
}

func (s *fakePersonStore) Delete(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.people[id]; !ok {
		return NotFoundf("person %d not found", id)
	}
	if s.refs[id] > 0 {
		return Conflictf("person %d has %d assigned tasks", id, s.refs[id])
	}
	delete(s.people, id)
	return nil
}

// fakeTaskStore is an in-memory TaskStore. people points at the companion
// fakePersonStore so assignment targets are validated the same way the
// SQLite store does.
type fakeTaskStore struct {
	tasks  map[int64]*models.Task
	people *fakePersonStore
	nextID int64
	err    error
}

func newFakeTaskStore(people *fakePersonStore) *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*models.Task), people: people}
}

func (s *fakeTaskStore) Insert(ctx context.Context, title string, assignee *int64, created time.Time) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	if assignee != nil {
		if _, ok := s.people.people[*assignee]; !ok {
			return nil, NotFoundf("person %d not found", *assignee)
		}
		s.people.refs[*assignee]++
	}
	s.nextID++
	t := &models.Task{ID: s.nextID, Title: title, Created: created, AssignedTo: assignee}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *fakeTaskStore) Get(ctx context.Context, id int64) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, NotFoundf("task %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) MarkDone(ctx context.Context, id int64) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, NotFoundf("task %d not found", id)
	}
	t.Done = true
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) SetAssignee(ctx context.Context, id int64, assignee *int64) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, NotFoundf("task %d not found", id)
	}
	if assignee != nil {
		if _, ok := s.people.people[*assignee]; !ok {
			return nil, NotFoundf("person %d not found", *assignee)
		}
	}
	if t.AssignedTo != nil {
		s.people.refs[*t.AssignedTo]--
	}
	t.AssignedTo = assignee
	if assignee != nil {
		s.people.refs[*assignee]++
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return NotFoundf("task %d not found", id)
	}
	if t.AssignedTo != nil {
		s.people.refs[*t.AssignedTo]--
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	if filter.Kind == models.FilterByPerson {
		if _, ok := s.people.people[filter.PersonID]; !ok {
			return nil, NotFoundf("person %d not found", filter.PersonID)
		}
	}
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch filter.Kind {
		case models.FilterUnassigned:
			if t.AssignedTo != nil {
				continue
			}
		case models.FilterByPerson:
			if t.AssignedTo == nil || *t.AssignedTo != filter.PersonID {
				continue
			}
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func testNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// recordedEvent captures one LogEvent call.
type recordedEvent struct {
	Type string
	Data map[string]any
}

// recordingLogger captures events for assertion.
type recordingLogger struct {
	events []recordedEvent
	err    error
}

func (l *recordingLogger) LogEvent(ctx context.Context, eventType string, data map[string]any) error {
	if l.err != nil {
		return l.err
	}
	l.events = append(l.events, recordedEvent{Type: eventType, Data: data})
	return nil
}

func (l *recordingLogger) types() []string {
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}
