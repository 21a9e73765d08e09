package handler

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// ValidationError maps field names to messages for transport.
type ValidationError url.Values

// NewValidationError creates an empty ValidationError.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// ValidationErrorFrom converts domain validation errors.
func ValidationErrorFrom(errs validator.ValidationErrors) ValidationError {
	ve := NewValidationError()
	for _, e := range errs {
		ve.Add(e.Field, e.Message)
	}
	return ve
}

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// Add appends message for field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has reports whether field has a message.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether there are no messages.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
