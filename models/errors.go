package models

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrCarNotFound         = errors.New("car_not_found")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrAdminNotFound       = errors.New("admin_not_found")

	// ErrInvalidTransition is returned when a reservation transition is
	// attempted out of order (e.g. pickup confirmed before the call).
	ErrInvalidTransition = errors.New("invalid_state_transition")

	// ErrConflict is returned when a concurrent admin session updated the
	// same record first (version check failed).
	ErrConflict = errors.New("write_conflict")
)

// ValidationError identifies which booking-form constraint was violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_failed: %s %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed store call so callers can tell
// infrastructure failures apart from domain rejections.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence_failed: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
