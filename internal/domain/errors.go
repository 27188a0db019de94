// Package domain holds the error taxonomy shared by all layers of the
// service. Handlers map these types to HTTP status codes; nothing below the
// handler layer knows about HTTP.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError signals malformed or semantically invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// InvalidIntervalError signals a zero-length or inverted time interval.
// It is rejected before any storage access happens.
type InvalidIntervalError struct {
	Start string
	End   string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: start %s must be before end %s", e.Start, e.End)
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// SlotConflictError signals that the requested slot overlaps an existing
// booking. It carries the conflicting booking so callers can render an
// actionable message.
type SlotConflictError struct {
	BookingID uuid.UUID
	Date      string
	StartTime string
	EndTime   string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("hall is already booked on %s from %s to %s (booking %s)",
		e.Date, e.StartTime, e.EndTime, e.BookingID)
}

// InvalidTransitionError signals an illegal booking status transition.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// PastBookingError signals an attempt to delete a booking whose start has
// already passed.
type PastBookingError struct {
	BookingID uuid.UUID
}

func (e *PastBookingError) Error() string {
	return fmt.Sprintf("booking %s is in the past and cannot be deleted", e.BookingID)
}

// ConflictError signals a concurrent-modification conflict (optimistic lock
// failure). Callers may re-read and retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ForbiddenError signals that the caller is not allowed to act on the
// entity.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// StorageError wraps a transient storage failure. It is the only error
// category callers should consider retryable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err as a StorageError for the given operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
