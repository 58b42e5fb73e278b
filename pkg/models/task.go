package models

import "time"

// Task is a single tracked work item. AssignedTo is nil while the task is
// unassigned; otherwise it holds the ID of an existing Person. A task never
// has more than one assignee.
type Task struct {
	ID         int64     `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Done       bool      `json:"is_done" yaml:"done"`
	Created    time.Time `json:"created_at" yaml:"created"`
	AssignedTo *int64    `json:"assigned_to_id" yaml:"assigned_to,omitempty"`
}

// FilterKind selects which tasks a listing returns.
type FilterKind int

const (
	// FilterAll returns every task.
	FilterAll FilterKind = iota
	// FilterUnassigned returns tasks with no assignee.
	FilterUnassigned
	// FilterByPerson returns tasks assigned to a specific person.
	FilterByPerson
)

// TaskFilter is the internal representation of the three listing states.
// PersonID is only meaningful when Kind is FilterByPerson.
type TaskFilter struct {
	Kind     FilterKind
	PersonID int64
}

// AllTasks returns a filter matching every task.
func AllTasks() TaskFilter { return TaskFilter{Kind: FilterAll} }

// UnassignedTasks returns a filter matching tasks with a nil assignee.
func UnassignedTasks() TaskFilter { return TaskFilter{Kind: FilterUnassigned} }

// TasksAssignedTo returns a filter matching tasks assigned to personID.
func TasksAssignedTo(personID int64) TaskFilter {
	return TaskFilter{Kind: FilterByPerson, PersonID: personID}
}
