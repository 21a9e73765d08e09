package contact

import (
	"log/slog"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/cookie"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/validator"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

// Element ids shared by the views and the datastar patches.
const (
	SubmissionID     = "submission"
	ToastContainerID = "toast-container"
)

// FieldErrorID is the id of the element holding the inline error of f.
func FieldErrorID(f contactform.Field) string {
	return f.String() + "-error"
}

// NoticeSubmitted is the flash notice shown after a plain form post succeeded.
const NoticeSubmitted = "contact.notice.submitted"

const (
	defaultCookieName = "contact_form"
	noticeFlashKey    = "contact_notice"
)

// PageParams contains data for rendering the contact page.
type PageParams struct {
	View contactform.View
	// Notice is the translation key of a one-off notice, or "".
	Notice   string
	BasePath string
}

// FieldErrorParams contains data for rendering one inline error slot.
type FieldErrorParams struct {
	Field contactform.Field
	// Error is nil when the field is valid.
	Error *validator.ValidationError
}

// SubmissionParams contains data for rendering the submission display.
type SubmissionParams struct {
	Record *contactform.SubmissionRecord
}

// Views renders the module. Every element rendered by FieldError and
// Submission must carry the id returned by FieldErrorID or SubmissionID so
// datastar can morph it in place.
type Views struct {
	Page       func(PageParams) templ.Component
	FieldError func(FieldErrorParams) templ.Component
	Submission func(SubmissionParams) templ.Component
}

// Module serves the contact form page, its datastar actions and a small
// JSON API. Each visitor is bound to one form through a signed cookie.
type Module struct {
	svc          *contactsvc.Service
	views        *Views
	cookies      *cookie.Manager
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger

	limiter  ratelimiter.Limiter
	limitKey ratelimiter.KeyFunc

	cookieName   string
	cookieMaxAge int
	basePath     string
}

// Option configures a Module.
type Option func(*Module)

// WithErrorHandler sets the handler for page and datastar errors.
// API routes always answer JSON.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(m *Module) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithSubmitLimiter rate limits submissions per key.
func WithSubmitLimiter(l ratelimiter.Limiter, key ratelimiter.KeyFunc) Option {
	return func(m *Module) {
		m.limiter = l
		m.limitKey = key
	}
}

// WithCookieName sets the name of the form id cookie.
func WithCookieName(name string) Option {
	return func(m *Module) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithFormTTL sets the lifetime of the form id cookie. It should match the
// state ttl of the service.
func WithFormTTL(ttl time.Duration) Option {
	return func(m *Module) {
		m.cookieMaxAge = int(ttl.Seconds())
	}
}

// WithBasePath sets the path the module is mounted at. Form actions and
// redirects are built from it.
func WithBasePath(path string) Option {
	return func(m *Module) {
		m.basePath = path
	}
}

// WithLogger sets the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModule creates a Module.
func NewModule(svc *contactsvc.Service, views *Views, cookies *cookie.Manager, opts ...Option) *Module {
	m := &Module{
		svc:        svc,
		views:      views,
		cookies:    cookies,
		log:        slog.New(slog.DiscardHandler),
		cookieName: defaultCookieName,
		basePath:   "/",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.errorHandler == nil {
		m.errorHandler = handler.NewErrorHandler(m.log, handler.ErrorHandlerConfig{})
	}
	return m
}
