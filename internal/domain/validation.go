package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors aggregates field errors so a request can report all of them at once.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidValueError(field, value, allowed string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", allowed),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, got, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   fmt.Sprintf("%d", got),
	}
}
