package contact

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/pkg/cookie"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

type formIDKey struct{}

// FormIDFromContext returns the form id assigned by the module middleware.
func FormIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(formIDKey{}).(string)
	return id
}

// LoggerExtractor adds the form id to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FormIDFromContext(ctx); id != "" {
			return logger.FormID(id), true
		}
		return slog.Attr{}, false
	}
}

// formIdentity assigns every visitor a form id kept in a signed cookie.
// Missing, tampered or malformed cookies start a new form.
func (m *Module) formIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.cookies.GetSigned(r, m.cookieName)
		if err == nil {
			if _, err = uuid.Parse(id); err != nil {
				id = ""
			}
		}
		if id == "" {
			id = uuid.NewString()
			var opts []cookie.Option
			if m.cookieMaxAge > 0 {
				opts = append(opts, cookie.WithMaxAge(m.cookieMaxAge))
			}
			m.cookies.SetSigned(w, m.cookieName, id, opts...)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), formIDKey{}, id)))
	})
}
