package contactform

import (
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// ValidationResult maps a field to its current error. A field that is absent
// is valid.
type ValidationResult map[Field]validator.ValidationError

// Valid reports whether the result holds no errors.
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}

// Has reports whether field currently has an error.
func (r ValidationResult) Has(f Field) bool {
	_, ok := r[f]
	return ok
}

// Message returns the human-readable error for field, or "".
func (r ValidationResult) Message(f Field) string {
	return r[f].Message
}

// Messages flattens the result into field name → message.
func (r ValidationResult) Messages() map[string]string {
	out := make(map[string]string, len(r))
	for f, err := range r {
		out[string(f)] = err.Message
	}
	return out
}

// Errors returns the errors in field display order.
func (r ValidationResult) Errors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, f := range fields {
		if err, ok := r[f]; ok {
			errs.Add(err)
		}
	}
	return errs
}

// Err returns the result as an error value, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors()
}

func (r ValidationResult) clone() ValidationResult {
	out := make(ValidationResult, len(r))
	for f, err := range r {
		out[f] = err
	}
	return out
}

func rulesFor(f Field, value string) []validator.Rule {
	name := string(f)
	switch f {
	case FirstName:
		return []validator.Rule{
			validator.RequiredString(name, value),
			validator.MinLenString(name, value, FirstNameMinLength),
		}
	case LastName:
		return []validator.Rule{
			validator.RequiredString(name, value),
		}
	case Email:
		return []validator.Rule{
			validator.RequiredString(name, value),
			validator.ValidEmail(name, value),
		}
	}
	return nil
}

// ValidateField applies the rule set of a single field. Only the first
// failing rule is reported. Unknown fields and message never fail.
func ValidateField(f Field, value string) (validator.ValidationError, bool) {
	return validator.FirstFailure(rulesFor(f, value)...)
}

// ValidateAll validates every field of state.
func ValidateAll(state FormState) ValidationResult {
	result := make(ValidationResult)
	for _, f := range fields {
		if err, failed := ValidateField(f, state.Value(f)); failed {
			result[f] = err
		}
	}
	return result
}
