// Package binder decodes HTTP request data into structs for handler.Wrap.
//
// Each binder has the signature func(*http.Request, any) error and returns
// ErrBinderNotApplicable when the request carries nothing it understands.
// Binders are chained and each applicable one runs in order:
//
//	handler.WithBinders[handler.Context, contactform.FormState](
//		binder.Signals(), // datastar actions
//		binder.JSON(),    // API clients
//		binder.Form(),    // plain HTML form posts
//	)
//
// Form uses `form` tags and JSON and Signals use `json` tags. Form treats
// untagged exported fields as their lowercased name. Path and Query only bind
// fields carrying a `path` or `query` tag.
package binder
