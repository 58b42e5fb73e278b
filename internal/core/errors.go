// Package core contains the business logic for the task roster service:
// the person registry, the task service, and the assignment coordinator
// that enforces the cross-entity invariants between them.
package core

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the three failure classes every operation can report.
// Callers branch with errors.Is; the concrete message travels alongside.
var (
	// ErrValidation marks malformed or constraint-violating input caught
	// before mutation (empty name or title, duplicate person name).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced ID that does not exist at operation time.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation that would violate a cross-entity
	// invariant under concurrency, such as removing a person who still has
	// tasks assigned. Callers may retry after re-reading state.
	ErrConflict = errors.New("conflict")
)

// ErrDuplicateName is the validation kind for a person name collision.
// It unwraps to ErrValidation; the API layer maps it to 409 where plain
// validation failures map to 400.
var ErrDuplicateName = fmt.Errorf("duplicate name: %w", ErrValidation)

// OpError wraps an operation failure with its sentinel kind.
type OpError struct {
	Kind error
	Msg  string
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *OpError) Unwrap() error { return e.Kind }

// Validationf builds an ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return &OpError{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// DuplicateNamef builds an ErrDuplicateName with a formatted message.
func DuplicateNamef(format string, args ...any) error {
	return &OpError{Kind: ErrDuplicateName, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &OpError{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds an ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return &OpError{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}
