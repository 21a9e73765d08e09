package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/binder"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

// Handle returns the module router.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, i18n.Middleware(extract, "en"))
//	r.Mount("/", contact.NewModule(svc, views.New(tr), cookies).Handle())
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(m.formIdentity)

	r.Get("/", handler.Wrap(m.page,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))

	submit := handler.Wrap(m.submit,
		handler.WithBinders[handler.Context, contactform.FormState](
			binder.Signals(), // datastar actions
			binder.Form(),    // plain form posts
		),
		handler.WithErrorHandler[handler.Context, contactform.FormState](m.errorHandler),
	)
	if m.limiter != nil {
		r.With(m.rateLimit).Post("/", submit)
	} else {
		r.Post("/", submit)
	}

	r.Post("/fields/{field}", handler.Wrap(m.change,
		handler.WithBinders[handler.Context, changeRequest](
			binder.Path(chi.URLParam),
			binder.Signals(),
			binder.Form(),
		),
		handler.WithErrorHandler[handler.Context, changeRequest](m.errorHandler),
	))

	r.Post("/reset", handler.Wrap(m.reset,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/state", handler.Wrap(m.state,
			handler.WithErrorHandler[handler.Context, struct{}](m.apiError),
		))
		api.Post("/validate", handler.Wrap(m.validate,
			handler.WithBinders[handler.Context, contactform.FormState](binder.JSON(), binder.Form()),
			handler.WithErrorHandler[handler.Context, contactform.FormState](m.apiError),
		))
		api.Get("/submissions", handler.Wrap(m.submissions,
			handler.WithBinders[handler.Context, listRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, listRequest](m.apiError),
		))
	})

	return r
}

func (m *Module) rateLimit(next http.Handler) http.Handler {
	return ratelimiter.Middleware(m.limiter, m.limitKey,
		ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			m.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			m.errorHandler(handler.NewContext(w, r), errors.Join(handler.ErrServiceUnavailable, err))
		}),
	)(next)
}
