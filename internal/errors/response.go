package errors

import (
	"github.com/cockroachdb/errors"
)

// ErrorDetail carries the serializable parts of an error.
type ErrorDetail struct {
	Message      string         `json:"message"`
	InternalErr  string         `json:"internal_error,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the JSON shape surfaced to API consumers and embedded in
// side-channel records such as excluded-contract reports.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into the transportable response shape.
// For InternalError values the hint becomes the message and the internal
// message is preserved separately.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	detail := &ErrorDetail{Message: err.Error()}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Hint() != "" {
			detail.Message = ie.Hint()
			detail.InternalErr = ie.Error()
		}
		detail.Details = ie.ReportableDetails()
	}

	return &ErrorResponse{
		Success: false,
		Error:   detail,
	}
}
