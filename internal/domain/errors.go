package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch with errors.Is without knowing the concrete failure.
var (
	// ErrValidation indicates the input was rejected before any state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrOutOfRange indicates a positional argument is outside the valid bounds.
	ErrOutOfRange = errors.New("index out of range")
)

// Validation errors.
var (
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrCommentRequired = fmt.Errorf("%w: comment text is required", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidCategory = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrInvalidDueDate  = fmt.Errorf("%w: invalid due date", ErrValidation)
	ErrEmptyUpdateMask = fmt.Errorf("%w: update mask is empty", ErrValidation)
	ErrUnknownField    = fmt.Errorf("%w: unknown field in update mask", ErrValidation)
	ErrInvalidBackup   = fmt.Errorf("%w: backup is not a task collection", ErrValidation)

	// ErrExpiredWithoutDueDate rejects a change that would leave an undated
	// task expired.
	ErrExpiredWithoutDueDate = fmt.Errorf("%w: expired requires a due date", ErrInvalidStatus)
)

// ErrTaskNotFound indicates no task has the given id.
var ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

// ErrCommentOutOfRange indicates a comment index outside [0, len(comments)).
var ErrCommentOutOfRange = fmt.Errorf("comment %w", ErrOutOfRange)

// PersistenceWarning reports a failed write to durable storage.
// It is never returned from a mutation: the in-memory change stands and the
// warning is logged and handed to the configured handler instead.
type PersistenceWarning struct {
	Op  string // operation that triggered the write
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("persist after %s: %v", w.Op, w.Err)
}

func (w *PersistenceWarning) Unwrap() error {
	return w.Err
}
