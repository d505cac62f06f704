package service

import (
	"errors"
	"fmt"
)

// ErrConfirmationRequired is returned when Delete is called without a confirmation gate.
var ErrConfirmationRequired = errors.New("delete requires a confirmation prompt")

// ValidationError reports a draft field that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SelectionError reports an update, delete or load without a record to act on.
// ID is zero when nothing was selected at all.
type SelectionError struct {
	ID int64
}

func (e *SelectionError) Error() string {
	if e.ID == 0 {
		return "no bill selected"
	}
	return fmt.Sprintf("bill %d does not exist", e.ID)
}

// StorageError wraps a failure from the bill store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsSelection reports whether err is or wraps a *SelectionError.
func IsSelection(err error) bool {
	var target *SelectionError
	return errors.As(err, &target)
}

// IsStorage reports whether err is or wraps a *StorageError.
func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
