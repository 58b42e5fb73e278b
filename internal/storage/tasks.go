package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tobyward/taskroster/internal/core"
	"github.com/tobyward/taskroster/pkg/models"
)

// TaskStore implements core.TaskStore over SQLite.
type TaskStore struct {
	db *sql.DB
}

func (s *TaskStore) Insert(ctx context.Context, title string, assignee *int64, created time.Time) (*models.Task, error) {
	var task *models.Task
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if assignee != nil {
			if err := personExists(ctx, tx, *assignee); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (title, is_done, created_at, assigned_to_id) VALUES (?, 0, ?, ?)`,
			title, created, nullableID(assignee))
		if err != nil {
			if isFKViolation(err) {
				return core.NotFoundf("person %d does not exist", *assignee)
			}
			return fmt.Errorf("inserting task: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("inserting task: reading id: %w", err)
		}
		task = &models.Task{ID: id, Title: title, Created: created, AssignedTo: assignee}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) Get(ctx context.Context, id int64) (*models.Task, error) {
	return scanTask(s.db.QueryRowContext(ctx,
		`SELECT id, title, is_done, created_at, assigned_to_id FROM tasks WHERE id = ?`, id), id)
}

func (s *TaskStore) MarkDone(ctx context.Context, id int64) (*models.Task, error) {
	var task *models.Task
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE tasks SET is_done = 1 WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		if n == 0 {
			return core.NotFoundf("task %d does not exist", id)
		}

		task, err = scanTask(tx.QueryRowContext(ctx,
			`SELECT id, title, is_done, created_at, assigned_to_id FROM tasks WHERE id = ?`, id), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// SetAssignee replaces the task's assignment unconditionally. The person
// existence check and the write share a transaction; the foreign-key
// constraint catches a person removed by a competing connection after the
// check.
func (s *TaskStore) SetAssignee(ctx context.Context, id int64, assignee *int64) (*models.Task, error) {
	var task *models.Task
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if assignee != nil {
			if err := personExists(ctx, tx, *assignee); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE tasks SET assigned_to_id = ? WHERE id = ?`, nullableID(assignee), id)
		if err != nil {
			if isFKViolation(err) {
				return core.NotFoundf("person %d does not exist", *assignee)
			}
			return fmt.Errorf("updating task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		if n == 0 {
			return core.NotFoundf("task %d does not exist", id)
		}

		task, err = scanTask(tx.QueryRowContext(ctx,
			`SELECT id, title, is_done, created_at, assigned_to_id FROM tasks WHERE id = ?`, id), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return core.NotFoundf("task %d does not exist", id)
	}
	return nil
}

// List returns tasks newest-first by creation time, ties broken by insertion
// order. For FilterByPerson the person's existence is verified inside the
// same transaction as the read.
func (s *TaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	const base = `SELECT id, title, is_done, created_at, assigned_to_id FROM tasks`
	const order = ` ORDER BY created_at DESC, id ASC`

	switch filter.Kind {
	case models.FilterAll:
		return s.queryTasks(ctx, s.db, base+order)
	case models.FilterUnassigned:
		return s.queryTasks(ctx, s.db, base+` WHERE assigned_to_id IS NULL`+order)
	case models.FilterByPerson:
		var tasks []models.Task
		err := withTx(ctx, s.db, func(tx *sql.Tx) error {
			if err := personExists(ctx, tx, filter.PersonID); err != nil {
				return err
			}
			var err error
			tasks, err = s.queryTasks(ctx, tx, base+` WHERE assigned_to_id = ?`+order, filter.PersonID)
			return err
		})
		if err != nil {
			return nil, err
		}
		return tasks, nil
	default:
		return nil, fmt.Errorf("unknown filter kind %d", filter.Kind)
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *TaskStore) queryTasks(ctx context.Context, q querier, query string, args ...any) ([]models.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var assignee sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &t.Created, &assignee); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		if assignee.Valid {
			t.AssignedTo = &assignee.Int64
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	return tasks, nil
}

func personExists(ctx context.Context, tx *sql.Tx, id int64) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM people WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking person: %w", err)
	}
	if !exists {
		return core.NotFoundf("person %d does not exist", id)
	}
	return nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func scanTask(row *sql.Row, id int64) (*models.Task, error) {
	var t models.Task
	var assignee sql.NullInt64
	if err := row.Scan(&t.ID, &t.Title, &t.Done, &t.Created, &assignee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundf("task %d does not exist", id)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	if assignee.Valid {
		t.AssignedTo = &assignee.Int64
	}
	return &t, nil
}
