package i18n

import "context"

type localeContextKey struct{}

// SetLocale stores the locale in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return DefaultLanguage
}
