package validator

import (
	"sync"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest validates a request struct against its `validate` tags and
// converts failures into validation-marked errors.
func ValidateRequest(req interface{}) error {
	if req == nil {
		return ierr.NewError("request cannot be nil").
			WithHint("Request cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if err := getValidator().Struct(req); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			details := make(map[string]any, len(fieldErrors))
			for _, fe := range fieldErrors {
				details[fe.Field()] = fe.Tag()
			}
			return ierr.WithError(err).
				WithHint("Request validation failed").
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			Mark(ierr.ErrValidation)
	}
	return nil
}
