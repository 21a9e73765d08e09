package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// FormID records the contact form instance under the key "form_id".
func FormID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("form_id", id)
}

// SubmissionID records an archived submission under the key "submission_id".
func SubmissionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("submission_id", id)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// ErrorCount records how many validation errors a form currently shows.
func ErrorCount(n int) slog.Attr {
	return slog.Int("error_count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Handler records the handler name under the key "handler".
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
