package contact

import (
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/sanitizer"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxMessageLength = 5000
)

var (
	cleanName = sanitizer.Compose(
		sanitizer.RemoveControlChars,
		sanitizer.StripHTML,
		sanitizer.SingleLine,
		sanitizer.Truncate(maxNameLength),
	)
	cleanEmail = sanitizer.Compose(
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.Truncate(maxEmailLength),
	)
	cleanMessage = sanitizer.Compose(
		sanitizer.NormalizeNewlines,
		sanitizer.RemoveControlChars,
		sanitizer.Trim,
		sanitizer.Truncate(maxMessageLength),
	)
)

// sanitizeValue normalises raw input before validation. All fields but the
// message are reduced to a single trimmed line; names lose any markup.
func sanitizeValue(f contactform.Field, value string) string {
	switch f {
	case contactform.Email:
		return cleanEmail(value)
	case contactform.Message:
		return cleanMessage(value)
	default:
		return cleanName(value)
	}
}

func sanitizeState(s contactform.FormState) contactform.FormState {
	for _, f := range contactform.Fields() {
		s.Set(f, sanitizeValue(f, s.Value(f)))
	}
	return s
}
