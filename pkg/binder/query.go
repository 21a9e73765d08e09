package binder

import "net/http"

// Query binds URL query parameters into fields carrying a `query` tag.
// Untagged fields are left alone so a query string cannot overwrite body
// data bound by another binder. Requests without a query string yield
// ErrBinderNotApplicable.
//
//	type ListRequest struct {
//		Limit int `query:"limit"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.URL.RawQuery == "" {
			return ErrBinderNotApplicable
		}
		values := r.URL.Query()
		return bindTagged(v, "query", func(name string) []string {
			return values[name]
		}, ErrInvalidQuery)
	}
}
