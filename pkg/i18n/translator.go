package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Translator resolves dot-separated keys such as "contact.labels.email" to
// strings with %{name} placeholders.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]any
	defaultLang  string
	logMissing   bool
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for unknown languages and
// missing keys. Defaults to DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger used for load and missing-key messages.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every key that falls back.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguageCode
		}
	}

	t.translations = translations
	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages lists the loaded languages, default first, the rest sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs)
	if _, ok := t.translations[t.defaultLang]; ok {
		langs = append([]string{t.defaultLang}, langs...)
	}
	return langs
}

// HasTranslation reports whether lang defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang. args are name/value pairs substituted into
// %{name} placeholders. Missing keys fall back to the default language and
// then to the key itself.
//
//	t.T("es", "validation.required", "field", "email")
func (t *Translator) T(lang, key string, args ...string) string {
	return t.Td(lang, key, key, args...)
}

// Td is T with an explicit fallback instead of the key.
func (t *Translator) Td(lang, key, fallback string, args ...string) string {
	if s, ok := t.lookup(lang, key); ok {
		return substitute(s, args)
	}
	if lang != t.defaultLang {
		if s, ok := t.lookup(t.defaultLang, key); ok {
			return substitute(s, args)
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return substitute(fallback, args)
}

// Tc translates using the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	current, ok := t.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			switch v := val.(type) {
			case string:
				return v, true
			case fmt.Stringer:
				return v.String(), true
			}
			return "", false
		}
		if current, ok = val.(map[string]any); !ok {
			return "", false
		}
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with the matching value from name/value pairs.
// Unknown placeholders are kept as-is; an odd trailing arg is ignored.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

type structureError struct {
	lang string
	got  any
}

func (e *structureError) Error() string {
	return fmt.Sprintf("%s: language %q: expected map, got %T", ErrInvalidStructure, e.lang, e.got)
}

func (e *structureError) Unwrap() error { return ErrInvalidStructure }
