package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/pkg/models"
)

// TestStore_FilterPartitionProperty drives a random mix of inserts,
// assignments, and deletions, then checks that the three list filters
// partition the surviving tasks exactly.
func TestStore_FilterPartitionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		db := newTestDB(t)
		ctx := context.Background()

		numPeople := rapid.IntRange(1, 5).Draw(rt, "numPeople")
		people := make([]int64, 0, numPeople)
		for i := 0; i < numPeople; i++ {
			p, err := db.People().Insert(ctx, fmt.Sprintf("person-%d", i), testTime(i))
			if err != nil {
				rt.Fatalf("insert person: %v", err)
			}
			people = append(people, p.ID)
		}

		numTasks := rapid.IntRange(1, 20).Draw(rt, "numTasks")
		for i := 0; i < numTasks; i++ {
			var assignee *int64
			if rapid.Bool().Draw(rt, fmt.Sprintf("assigned_%d", i)) {
				idx := rapid.IntRange(0, numPeople-1).Draw(rt, fmt.Sprintf("who_%d", i))
				assignee = &people[idx]
			}
			task, err := db.Tasks().Insert(ctx, fmt.Sprintf("task-%d", i), assignee, testTime(i))
			if err != nil {
				rt.Fatalf("insert task: %v", err)
			}
			if rapid.IntRange(0, 4).Draw(rt, fmt.Sprintf("delete_%d", i)) == 0 {
				if err := db.Tasks().Delete(ctx, task.ID); err != nil {
					rt.Fatalf("delete task: %v", err)
				}
			}
		}

		all, err := db.Tasks().List(ctx, models.AllTasks())
		if err != nil {
			rt.Fatalf("list all: %v", err)
		}
		unassigned, err := db.Tasks().List(ctx, models.UnassignedTasks())
		if err != nil {
			rt.Fatalf("list unassigned: %v", err)
		}

		seen := make(map[int64]bool, len(all))
		assignedCount := 0
		for _, task := range all {
			if seen[task.ID] {
				rt.Fatalf("task %d listed twice", task.ID)
			}
			seen[task.ID] = true
			if task.AssignedTo != nil {
				assignedCount++
			}
		}
		for _, task := range unassigned {
			if task.AssignedTo != nil {
				rt.Fatalf("unassigned filter returned task %d assigned to %d", task.ID, *task.AssignedTo)
			}
			if !seen[task.ID] {
				rt.Fatalf("unassigned filter returned task %d missing from the full list", task.ID)
			}
		}
		if len(unassigned) != len(all)-assignedCount {
			rt.Fatalf("expected %d unassigned tasks, got %d", len(all)-assignedCount, len(unassigned))
		}

		byPersonTotal := 0
		for _, id := range people {
			tasks, err := db.Tasks().List(ctx, models.TasksAssignedTo(id))
			if err != nil {
				rt.Fatalf("list by person %d: %v", id, err)
			}
			for _, task := range tasks {
				if task.AssignedTo == nil || *task.AssignedTo != id {
					rt.Fatalf("by-person filter for %d returned task %d with assignee %v", id, task.ID, task.AssignedTo)
				}
			}
			byPersonTotal += len(tasks)
		}
		if byPersonTotal != assignedCount {
			rt.Fatalf("expected %d tasks across per-person filters, got %d", assignedCount, byPersonTotal)
		}
	})
}

// TestStore_DeleteGuardProperty checks that person removal is blocked
// exactly when the person holds at least one assignment.
func TestStore_DeleteGuardProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		db := newTestDB(t)
		ctx := context.Background()

		person, err := db.People().Insert(ctx, "holder", testTime(0))
		if err != nil {
			rt.Fatalf("insert person: %v", err)
		}

		numTasks := rapid.IntRange(0, 8).Draw(rt, "numTasks")
		held := make([]int64, 0, numTasks)
		for i := 0; i < numTasks; i++ {
			task, err := db.Tasks().Insert(ctx, fmt.Sprintf("task-%d", i), &person.ID, testTime(i))
			if err != nil {
				rt.Fatalf("insert task: %v", err)
			}
			held = append(held, task.ID)
		}

		err = db.People().Delete(ctx, person.ID)
		if numTasks > 0 {
			if !errors.Is(err, core.ErrConflict) {
				rt.Fatalf("expected conflict with %d held tasks, got %v", numTasks, err)
			}
		} else if err != nil {
			rt.Fatalf("expected removal of an unreferenced person to succeed, got %v", err)
		}

		// Releasing every task makes the person removable.
		if numTasks > 0 {
			for _, id := range held {
				if _, err := db.Tasks().SetAssignee(ctx, id, nil); err != nil {
					rt.Fatalf("clear assignee: %v", err)
				}
			}
			if err := db.People().Delete(ctx, person.ID); err != nil {
				rt.Fatalf("expected removal after release, got %v", err)
			}
		}
	})
}
