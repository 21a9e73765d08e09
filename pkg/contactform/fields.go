package contactform

import "fmt"

// Field names one input of the contact form.
type Field string

const (
	FirstName Field = "firstName"
	LastName  Field = "lastName"
	Email     Field = "email"
	Message   Field = "message"
)

// FirstNameMinLength is the minimum number of characters accepted for firstName.
const FirstNameMinLength = 5

var fields = [...]Field{FirstName, LastName, Email, Message}

// Fields returns every form field in display order.
func Fields() []Field {
	return fields[:]
}

// ParseField converts an input name into a Field.
func ParseField(name string) (Field, error) {
	for _, f := range fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Required reports whether the field must be filled before submitting.
func (f Field) Required() bool {
	return f != Message
}

func (f Field) String() string {
	return string(f)
}

// FormState is the mutable record of field values.
type FormState struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Message   string `json:"message" form:"message"`
}

// Value returns the current value of field, or "" for unknown fields.
func (s FormState) Value(f Field) string {
	switch f {
	case FirstName:
		return s.FirstName
	case LastName:
		return s.LastName
	case Email:
		return s.Email
	case Message:
		return s.Message
	}
	return ""
}

// Set stores value for field and reports whether the field is known.
func (s *FormState) Set(f Field, value string) bool {
	switch f {
	case FirstName:
		s.FirstName = value
	case LastName:
		s.LastName = value
	case Email:
		s.Email = value
	case Message:
		s.Message = value
	default:
		return false
	}
	return true
}
