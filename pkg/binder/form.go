package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds the memory used when parsing multipart forms.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies
// using `form` struct tags. Uploaded files are ignored.
//
//	type SubmitRequest struct {
//		FirstName string `form:"firstName"`
//		Message   string `form:"message"`
//	}
//
// Any other content type yields ErrBinderNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return ErrBinderNotApplicable
		}

		var values map[string][]string
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return ErrBinderNotApplicable
		}

		return bindValues(v, "form", values, ErrInvalidForm)
	}
}
