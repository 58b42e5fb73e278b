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

// PersonStore implements core.PersonStore over SQLite.
type PersonStore struct {
	db *sql.DB
}

func (s *PersonStore) Insert(ctx context.Context, name string, created time.Time) (*models.Person, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO people (name, created_at) VALUES (?, ?)`, name, created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.DuplicateNamef("person name %q is already taken", name)
		}
		return nil, fmt.Errorf("inserting person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("inserting person: reading id: %w", err)
	}
	return &models.Person{ID: id, Name: name, Created: created}, nil
}

func (s *PersonStore) Get(ctx context.Context, id int64) (*models.Person, error) {
	return scanPerson(s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM people WHERE id = ?`, id), id)
}

func (s *PersonStore) GetAll(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Created); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading people: %w", err)
	}
	return people, nil
}

func (s *PersonStore) Rename(ctx context.Context, id int64, name string) (*models.Person, error) {
	var person *models.Person
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE people SET name = ? WHERE id = ?`, name, id)
		if err != nil {
			if isUniqueViolation(err) {
				return core.DuplicateNamef("person name %q is already taken", name)
			}
			return fmt.Errorf("updating person: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating person: %w", err)
		}
		if n == 0 {
			return core.NotFoundf("person %d does not exist", id)
		}

		person, err = scanPerson(tx.QueryRowContext(ctx,
			`SELECT id, name, created_at FROM people WHERE id = ?`, id), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

// Delete removes the person. The reference-count check and the row delete
// run in one immediate transaction; the ON DELETE RESTRICT constraint is the
// backstop in case a referencing task is written by a competing connection.
func (s *PersonStore) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		var refs int64
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE assigned_to_id = ?`, id).Scan(&refs)
		if err != nil {
			return fmt.Errorf("counting references: %w", err)
		}
		if refs > 0 {
			return core.Conflictf("person %d is still assigned to %d task(s)", id, refs)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
		if err != nil {
			if isFKViolation(err) {
				return core.Conflictf("person %d is still assigned to tasks", id)
			}
			return fmt.Errorf("deleting person: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting person: %w", err)
		}
		if n == 0 {
			return core.NotFoundf("person %d does not exist", id)
		}
		return nil
	})
}

func scanPerson(row *sql.Row, id int64) (*models.Person, error) {
	var p models.Person
	if err := row.Scan(&p.ID, &p.Name, &p.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundf("person %d does not exist", id)
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return &p, nil
}
