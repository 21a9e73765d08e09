package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidEmail validates that a string is a valid email address using RFC 5322.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("%s must be a valid email address", field),
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	// Display-name forms such as "Bob <bob@example.com>" parse fine but are not
	// what a single input field should accept.
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}
