package i18n

import (
	"net/http"
)

// LangExtractor picks a language for a request, or "" if it has no opinion.
type LangExtractor func(r *http.Request) string

type extractorConfig struct {
	cookieName     string
	queryParamName string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*extractorConfig)

// WithCookieName sets the cookie holding an explicit language choice. Empty disables it.
func WithCookieName(name string) ExtractorOption {
	return func(c *extractorConfig) { c.cookieName = name }
}

// WithQueryParamName sets the query parameter holding a language. Empty disables it.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *extractorConfig) { c.queryParamName = name }
}

// DefaultLangExtractor checks, in order, the query parameter "lang", the
// cookie "lang" and the Accept-Language header. Every candidate is matched
// against m, so only supported languages are returned.
func DefaultLangExtractor(m *Matcher, opts ...ExtractorOption) LangExtractor {
	cfg := extractorConfig{cookieName: "lang", queryParamName: "lang"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request) string {
		if cfg.queryParamName != "" {
			if lang := m.Match(r.URL.Query().Get(cfg.queryParamName)); lang != "" {
				return lang
			}
		}
		if cfg.cookieName != "" {
			if c, err := r.Cookie(cfg.cookieName); err == nil {
				if lang := m.Match(c.Value); lang != "" {
					return lang
				}
			}
		}
		return m.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
	}
}

// Middleware stores the extracted language in the request context and sets
// the Content-Language response header. An empty extraction yields fallback.
func Middleware(extract LangExtractor, fallback string) func(http.Handler) http.Handler {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extract(r)
			if lang == "" {
				lang = fallback
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
