package domain

import "fmt"

// Error types for consistent error handling across PayGuard.
// Request handlers map these to HTTP statuses; scheduled and event-triggered
// stages return them to the invoking scheduler/bus for redelivery.

// ErrValidation indicates invalid input. No state is mutated and no event is
// emitted when a validation error is returned.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrNotFound indicates a referenced record does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrConflict indicates the requested transition is not allowed from the
// record's current state, e.g. paying an already-paid bill.
type ErrConflict struct {
	Resource string
	ID       string
	Reason   string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("conflict on %s %s: %s", e.Resource, e.ID, e.Reason)
}

// ErrInternal wraps an unexpected infrastructure failure (store, bus). Request
// handlers surface it as a generic internal error without leaking detail.
type ErrInternal struct {
	Op  string
	Err error
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Op, e.Err)
}

func (e *ErrInternal) Unwrap() error {
	return e.Err
}
