// Package views renders the contact module with templ components and ships
// the en and es translations they use.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(views.Translations, views.TranslationsDir))
//	module := contact.NewModule(svc, views.New(tr), cookies)
//
// Labels, notices and validation messages are resolved in the request
// locale; English text built into the components is used when a key is
// missing or no translator is given.
//
// The *_templ.go files are produced by running templ generate from the
// module root.
package views
