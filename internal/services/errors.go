package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ValidationError carries per-field messages for rule-violating input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

func validationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// StorageError wraps a persistence failure. The cause is kept for logs;
// callers only ever see a generic message.
type StorageError struct{ Err error }

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// notFoundOrStorage maps a repository read error to the service taxonomy.
func notFoundOrStorage(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &NotFoundError{Message: message}
	}
	return &StorageError{Err: err}
}
