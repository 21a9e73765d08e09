package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/pkg/i18n"
)

func TestMatcher(t *testing.T) {
	t.Parallel()
	m := i18n.NewMatcher("en", "es")

	assert.Equal(t, "en", m.Default())
	assert.Equal(t, "es", m.Match("es"))
	assert.Equal(t, "es", m.Match("es-MX"))
	assert.Equal(t, "en", m.Match("EN-us"))
	assert.Empty(t, m.Match("fr"))
	assert.Empty(t, m.Match(""))
	assert.Empty(t, m.Match("not a tag!"))

	assert.Equal(t, "es", m.MatchAcceptLanguage("es-ES,es;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", m.MatchAcceptLanguage("fr;q=1.0, en;q=0.5"))
	assert.Empty(t, m.MatchAcceptLanguage("fr, de"))
	assert.Empty(t, m.MatchAcceptLanguage(""))

	assert.Equal(t, "en", i18n.NewMatcher().Default())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	m := i18n.NewMatcher("en", "es")

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "accept language", accept: "es-MX,es;q=0.9", want: "es"},
		{name: "unsupported accept language", accept: "fr", want: "en"},
		{name: "cookie beats header", cookie: "es", accept: "en", want: "es"},
		{name: "query beats cookie", query: "en", cookie: "es", want: "en"},
		{name: "invalid query ignored", query: "zz-invalid-$", accept: "es", want: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			h := i18n.Middleware(i18n.DefaultLangExtractor(m), m.Default())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = i18n.GetLocale(r.Context())
			}))

			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestDefaultLangExtractor_Options(t *testing.T) {
	t.Parallel()
	m := i18n.NewMatcher("en", "es")
	extract := i18n.DefaultLangExtractor(m, i18n.WithQueryParamName(""), i18n.WithCookieName("locale"))

	req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
	assert.Empty(t, extract(req), "query parameter disabled")

	req.AddCookie(&http.Cookie{Name: "locale", Value: "es"})
	assert.Equal(t, "es", extract(req))
}

func TestGetLocale_Default(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(req.Context()))
}
