// Package handler provides typed HTTP handlers and the responses they return.
//
// A HandlerFunc receives a Context and a request value that Wrap decoded with
// the configured binders, and returns a Response:
//
//	func validate(ctx handler.Context, state contactform.FormState) handler.Response {
//		result := contactform.ValidateAll(state)
//		if !result.Valid() {
//			return handler.JSONError(result.Err())
//		}
//		return handler.JSON(result)
//	}
//
//	r.Post("/api/validate", handler.Wrap(validate,
//		handler.WithBinders[handler.Context, contactform.FormState](binder.JSON()),
//	))
//
// # Responses
//
//	handler.Templ(component)                 // HTML page or datastar element patch
//	handler.TemplPartial(partial, full)      // patch partial, render full otherwise
//	handler.TemplMulti(patches...)           // several patches in one event stream
//	handler.JSON(data)                       // {"data": ...}
//	handler.JSONError(err)                   // {"error": ...} with a mapped status
//	handler.Redirect("/")                    // 303, or a client redirect for datastar
//	handler.Error(err)                       // delegate to the error handler
//
// Datastar requests are recognised by the Datastar-Request header and are
// answered with server-sent events.
//
// # Errors
//
// HTTPError carries a status and an i18n key; ValidationError carries field
// messages. NewErrorHandler logs every error and renders it as a toast,
// JSON or an error page depending on the request.
package handler
