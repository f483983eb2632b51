package billing

import (
	"errors"
	"fmt"
)

// Expected decision outcomes. These are not faults: callers match on them to
// re-display the request in its true current state.
var (
	// ErrRequestNotFound indicates the request id does not exist.
	ErrRequestNotFound = errors.New("subscription request not found")

	// ErrAlreadyProcessed indicates the request is no longer in a reviewable
	// state. Safe to ignore; the caller should refresh, not retry.
	ErrAlreadyProcessed = errors.New("subscription request already processed")

	// ErrMissingEvidence indicates approval was attempted with no payment
	// proof on record.
	ErrMissingEvidence = errors.New("no payment proof on record for request")
)

// ValidationError reports required input that is missing or malformed. It is
// raised before any transaction is opened, so it never implies side effects.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a storage-layer fault (lock timeout, constraint
// violation, connectivity). The enclosing transaction has been rolled back,
// so a verbatim retry is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with the failing operation name.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
