package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// FormatValidationError converts validator errors into an ErrorDetail
// so Validate() methods have a single error return shape.
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		e := verrs[0]
		return &ErrorDetail{
			Code:    "bad_request",
			Message: "field '" + e.Field() + "' failed on the '" + e.Tag() + "' rule",
		}
	}
	return &ErrorDetail{
		Code:    "bad_request",
		Message: err.Error(),
	}
}
