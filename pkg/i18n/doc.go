// Package i18n translates UI strings and negotiates the request language.
//
// Translations are nested maps keyed by language and loaded through a
// TranslationAdapter, typically an FSAdapter over an embedded directory of
// YAML files:
//
//	//go:embed translations/*.yaml
//	var translations embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(translations, "translations"))
//	msg := tr.T("es", "validation.required", "field", "email")
//
// Placeholders use the %{name} syntax. Missing keys fall back to the default
// language and then to the key itself.
//
// Middleware resolves the request language with golang.org/x/text/language
// matching, so "es-MX" resolves to "es":
//
//	m := i18n.NewMatcher(tr.SupportedLanguages()...)
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(m), m.Default()))
//
// Handlers then call tr.Tc(r.Context(), key).
package i18n
