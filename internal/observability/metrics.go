package observability

import (
	"fmt"
	"time"
)

// Metrics holds activity counters derived from the event log.
type Metrics struct {
	TasksCreated   int        `json:"tasks_created"`
	TasksCompleted int        `json:"tasks_completed"`
	TasksDeleted   int        `json:"tasks_deleted"`
	Assignments    int        `json:"assignments"`
	Unassignments  int        `json:"unassignments"`
	PeopleAdded    int        `json:"people_added"`
	PeopleRemoved  int        `json:"people_removed"`
	EventCount     int        `json:"event_count"`
	OldestEvent    *time.Time `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventCount: len(events)}
	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "task.created":
			m.TasksCreated++
		case "task.done":
			m.TasksCompleted++
		case "task.deleted":
			m.TasksDeleted++
		case "task.assigned":
			m.Assignments++
		case "task.unassigned":
			m.Unassignments++
		case "person.created":
			m.PeopleAdded++
		case "person.removed":
			m.PeopleRemoved++
		}
	}
	return m, nil
}
