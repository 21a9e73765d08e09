package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/i18n"
)

const enYAML = `
en:
  contact:
    title: Contact Form
    labels:
      first_name: First Name*
  validation:
    required: "%{field} is a required field"
    min_length: "%{field} must be at least %{min} characters"
`

const esYAML = `
es:
  contact:
    title: Formulario de contacto
  validation:
    required: "%{field} es un campo obligatorio"
`

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	fsys := fstest.MapFS{
		"translations/en.yaml":   {Data: []byte(enYAML)},
		"translations/es.yml":    {Data: []byte(esYAML)},
		"translations/README.md": {Data: []byte("ignored")},
	}
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(fsys, "translations"), opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	tests := []struct {
		name string
		lang string
		key  string
		args []string
		want string
	}{
		{name: "nested key", lang: "en", key: "contact.labels.first_name", want: "First Name*"},
		{name: "other language", lang: "es", key: "contact.title", want: "Formulario de contacto"},
		{name: "placeholders", lang: "en", key: "validation.min_length", args: []string{"field", "firstName", "min", "5"}, want: "firstName must be at least 5 characters"},
		{name: "translated placeholder", lang: "es", key: "validation.required", args: []string{"field", "email"}, want: "email es un campo obligatorio"},
		{name: "missing key falls back to default language", lang: "es", key: "contact.labels.first_name", want: "First Name*"},
		{name: "unknown language uses default", lang: "fr", key: "contact.title", want: "Contact Form"},
		{name: "missing everywhere returns key", lang: "en", key: "contact.nope", want: "contact.nope"},
		{name: "map value is not a string", lang: "en", key: "contact.labels", want: "contact.labels"},
		{name: "unknown placeholder kept", lang: "en", key: "validation.required", args: []string{"other", "x"}, want: "%{field} is a required field"},
		{name: "odd args ignored", lang: "en", key: "validation.required", args: []string{"field", "email", "extra"}, want: "email is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.T(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestTranslator_TdAndTc(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, "fallback x", tr.Td("en", "missing", "fallback %{v}", "v", "x"))
	assert.Equal(t, "Contact Form", tr.Td("en", "contact.title", "fallback"))

	ctx := i18n.SetLocale(context.Background(), "es")
	assert.Equal(t, "Formulario de contacto", tr.Tc(ctx, "contact.title"))
	assert.Equal(t, "Contact Form", tr.Tc(context.Background(), "contact.title"))
}

func TestTranslator_Languages(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
	assert.Equal(t, "en", tr.DefaultLanguage())
	assert.True(t, tr.HasTranslation("es", "contact.title"))
	assert.False(t, tr.HasTranslation("es", "contact.labels.first_name"))

	esFirst := newTranslator(t, i18n.WithDefaultLanguage("es"))
	assert.Equal(t, []string{"es", "en"}, esFirst.SupportedLanguages())
	assert.Equal(t, "Formulario de contacto", esFirst.T("de", "contact.title"))
}

func TestTranslator_MissingLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	tr := newTranslator(t, i18n.WithLogger(log), i18n.WithMissingTranslationsLogging(true))

	tr.T("en", "contact.nope")
	assert.Contains(t, buf.String(), "translation not found")
	assert.Contains(t, buf.String(), "key=contact.nope")
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := i18n.NewTranslator(ctx, nil)
	assert.ErrorIs(t, err, i18n.ErrNilAdapter)

	_, err = i18n.NewTranslator(ctx, &i18n.MapAdapter{Data: map[string]map[string]any{"": {}}})
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)

	tr, err := i18n.NewTranslator(ctx, &i18n.MapAdapter{})
	require.NoError(t, err)
	assert.Equal(t, "key", tr.T("en", "key"))
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("merges files in order", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"t/a.yaml": {Data: []byte("en:\n  a: one\n  b: two\n")},
			"t/b.json": {Data: []byte(`{"en": {"b": "three"}, "es": {"a": "uno"}}`)},
		}
		got, err := i18n.NewFSAdapter(fsys, "t").Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]map[string]any{
			"en": {"a": "one", "b": "three"},
			"es": {"a": "uno"},
		}, got)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFSAdapter(fstest.MapFS{}, "t").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("no translation files", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/notes.txt": {Data: []byte("x")}}
		_, err := i18n.NewFSAdapter(fsys, "t").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFiles)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/en.yaml": {Data: []byte("en: [unclosed")}}
		_, err := i18n.NewFSAdapter(fsys, "t").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("language is not a map", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/en.json": {Data: []byte(`{"en": "flat"}`)}}
		_, err := i18n.NewFSAdapter(fsys, "t").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrInvalidStructure)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		fsys := fstest.MapFS{"t/en.yaml": {Data: []byte(enYAML)}}
		_, err := i18n.NewFSAdapter(fsys, "t").Load(cctx)
		assert.True(t, errors.Is(err, i18n.ErrLoadingCancelled))
	})
}

func TestParserForFile(t *testing.T) {
	t.Parallel()

	assert.IsType(t, i18n.YAMLParser{}, i18n.ParserForFile("en.YAML"))
	assert.IsType(t, i18n.YAMLParser{}, i18n.ParserForFile("en.yml"))
	assert.IsType(t, i18n.JSONParser{}, i18n.ParserForFile("dir/en.json"))
	assert.Nil(t, i18n.ParserForFile("en.toml"))
	assert.Nil(t, i18n.ParserForFile("en"))
}
