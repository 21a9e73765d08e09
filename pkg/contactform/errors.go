package contactform

import "errors"

var (
	// ErrUnknownField is returned when an input name does not belong to the form.
	ErrUnknownField = errors.New("contactform: unknown field")
)
