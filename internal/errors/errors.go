package errors

import (
	"github.com/cockroachdb/errors"
)

// Standard error codes used across the application. Errors are classified by
// marking them with one of these sentinels via Mark.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrPermissionDenied = errors.New("permission_denied")
	ErrDatabase         = errors.New("database_error")
	ErrSystem           = errors.New("system_error")
	ErrInternal         = errors.New("internal_error")
)

// InternalError is the rich error type carried through the application.
// It wraps a cause, a user-facing hint, and optional reportable details.
type InternalError struct {
	err     error
	hint    string
	details map[string]any
	mark    error
}

func (e *InternalError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the wrapped cause chain, including the marked sentinel,
// so errors.Is works against both the cause and the classification.
func (e *InternalError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.err != nil {
		out = append(out, e.err)
	}
	if e.mark != nil {
		out = append(out, e.mark)
	}
	return out
}

// Hint returns the user-facing hint attached to the error, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to surface to callers.
func (e *InternalError) ReportableDetails() map[string]any {
	return e.details
}

// Is lets a bare sentinel comparison succeed against the marked code.
func (e *InternalError) Is(target error) bool {
	if e.mark != nil && errors.Is(e.mark, target) {
		return true
	}
	return errors.Is(e.err, target)
}

// Classification helpers.

func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
func IsInvalidOperation(err error) bool { return errors.Is(err, ErrInvalidOperation) }
func IsDatabase(err error) bool         { return errors.Is(err, ErrDatabase) }
func IsInternal(err error) bool         { return errors.Is(err, ErrInternal) || errors.Is(err, ErrSystem) }

// Is re-exports cockroachdb/errors.Is for callers that already import ierr.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports cockroachdb/errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
