package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldError is one entry in a 400 response's errors array. Validation
// failures are reported field by field, not just the first violation.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}
