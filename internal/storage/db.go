// Package storage implements the SQLite-backed record store for people and
// tasks. The assignment relationship is a nullable foreign key from tasks to
// people with ON DELETE RESTRICT, so the database itself guarantees that a
// person removal and a concurrent assignment can never interleave into a
// dangling reference: whichever transaction commits second fails cleanly.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT     NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT     NOT NULL,
	is_done        INTEGER  NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL,
	assigned_to_id INTEGER  NULL REFERENCES people(id) ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_to_id);
`

// DB wraps the SQLite handle shared by the person and task stores.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema. Foreign keys are enforced, transactions take the write lock up
// front (BEGIN IMMEDIATE), and lock waits are bounded by the busy timeout.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate&_loc=UTC", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// People returns the person store backed by this database.
func (d *DB) People() *PersonStore {
	return &PersonStore{db: d.db}
}

// Tasks returns the task store backed by this database.
func (d *DB) Tasks() *TaskStore {
	return &TaskStore{db: d.db}
}

// withTx runs fn inside a transaction, committing on nil and rolling back on
// error. With _txlock=immediate the write lock is held for the whole of fn,
// so a check-then-act sequence inside fn cannot race another writer.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// isFKViolation reports whether err is a FOREIGN KEY constraint failure.
func isFKViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
