package views

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrymomot/contactform/pkg/i18n"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// Translator is satisfied by *i18n.Translator.
type Translator interface {
	Td(lang, key, fallback string, args ...string) string
}

type localizer struct {
	tr Translator
}

// t translates key in the locale of ctx, falling back to the English text.
func (l localizer) t(ctx context.Context, key, fallback string, args ...string) string {
	if l.tr == nil {
		return fallback
	}
	return l.tr.Td(i18n.GetLocale(ctx), key, fallback, args...)
}

// message translates a validation error. Its own message is the fallback.
func (l localizer) message(ctx context.Context, err validator.ValidationError) string {
	if err.TranslationKey == "" {
		return err.Message
	}
	names := make([]string, 0, len(err.TranslationValues))
	for name := range err.TranslationValues {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, 2*len(names))
	for _, name := range names {
		args = append(args, name, fmt.Sprint(err.TranslationValues[name]))
	}
	return l.t(ctx, err.TranslationKey, err.Message, args...)
}
