package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent API for constructing InternalError values:
//
//	ierr.NewError("contract not found").
//		WithHint("Contract not found").
//		WithReportableDetails(map[string]any{"id": id}).
//		Mark(ierr.ErrNotFound)
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts a builder from a new error message.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{err: errors.New(msg)},
	}
}

// NewErrorf starts a builder from a formatted error message.
func NewErrorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{err: errors.Newf(format, args...)},
	}
}

// WithError starts a builder wrapping an existing cause.
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{
		err: &InternalError{err: err},
	}
}

// WithHint attaches a user-facing hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-facing hint.
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details safe to expose to callers.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark classifies the error with one of the standard sentinels and finishes
// the builder.
func (b *ErrorBuilder) Mark(sentinel error) error {
	b.err.mark = sentinel
	return b.err
}

// Error lets a builder be used directly as an error when Mark is skipped.
func (b *ErrorBuilder) Error() string {
	return b.err.Error()
}

// Unwrap makes the unfinished builder transparent to errors.Is/As.
func (b *ErrorBuilder) Unwrap() error {
	return b.err
}
