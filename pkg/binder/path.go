package binder

import (
	"fmt"
	"net/http"
)

// Path binds route parameters using `path` struct tags. extractor is usually
// chi.URLParam:
//
//	type FieldRequest struct {
//		Field string `path:"field"`
//	}
//
//	r.Post("/fields/{field}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, FieldRequest](binder.Path(chi.URLParam), binder.Signals()),
//	))
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindTagged(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}

// bindTagged is bindValues restricted to fields carrying tagName.
func bindTagged(v any, tagName string, lookup func(name string) []string, bindErr error) error {
	rv, err := structValue(v, bindErr)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		if _, tagged := sf.Tag.Lookup(tagName); !tagged {
			continue
		}
		name, skip := parseFieldTag(sf, tagName)
		if skip {
			continue
		}

		vals := lookup(name)
		if len(vals) == 0 {
			continue
		}
		if err := setFieldValue(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}
