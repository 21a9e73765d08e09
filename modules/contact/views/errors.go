package views

import (
	"context"

	"github.com/dmitrymomot/contactform/handler"
)

// ErrorViews renders the components used by handler.NewErrorHandler.
type ErrorViews struct {
	localizer
}

// NewErrorViews creates ErrorViews. tr may be nil.
func NewErrorViews(tr Translator) ErrorViews {
	return ErrorViews{localizer{tr: tr}}
}

// HandlerConfig wires the views and translations into an error handler
// config. showDetails should be false in production.
func (v ErrorViews) HandlerConfig(showDetails bool) handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:   v.Page,
		ErrorToast:  v.Toast,
		ShowDetails: showDetails,
		Translate: func(ctx context.Context, key string) string {
			fallback, ok := errorMessages[key]
			if !ok {
				fallback = key
			}
			return v.t(ctx, key, fallback)
		},
	}
}

// errorMessages are the English texts of the handler error keys.
var errorMessages = map[string]string{
	handler.ErrBadRequest.Key:          "The request could not be understood.",
	handler.ErrForbidden.Key:           "You are not allowed to do this.",
	handler.ErrNotFound.Key:            "The page you are looking for does not exist.",
	handler.ErrUnprocessableEntity.Key: "Please correct the highlighted fields.",
	handler.ErrTooManyRequests.Key:     "Too many submissions. Please wait a moment and try again.",
	handler.ErrInternalServerError.Key: "Something went wrong on our side.",
	handler.ErrServiceUnavailable.Key:  "The service is temporarily unavailable.",
}
