package views_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/modules/contact"
	"github.com/dmitrymomot/contactform/modules/contact/views"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/i18n"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(views.Translations, views.TranslationsDir))
	require.NoError(t, err)
	return tr
}

func submittedView(t *testing.T, message string) contactform.View {
	t.Helper()
	form := contactform.New(contactform.WithClock(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}))
	_, ok := form.OnSubmit(contactform.FormState{
		FirstName: "Irving",
		LastName:  "Delgado",
		Email:     "Irving@gmail.com",
		Message:   message,
	})
	require.True(t, ok)
	return form.View()
}

func TestPage(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	form := contactform.New()
	require.NoError(t, form.OnFieldChange(contactform.FirstName, "Irv"))
	require.NoError(t, form.OnFieldChange(contactform.LastName, `"><script>`))
	html := render(t, context.Background(), v.Page(contact.PageParams{View: form.View(), BasePath: "/contact"}))

	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<h1>Contact Form</h1>")
	assert.Contains(t, html, `<label for="firstName">First Name*</label>`)
	assert.Contains(t, html, `<label for="lastName">Last Name*</label>`)
	assert.Contains(t, html, `<label for="email">Email*</label>`)
	assert.Contains(t, html, `<label for="message">Message</label>`)
	assert.Equal(t, 1, strings.Count(html, "<button"))
	assert.Contains(t, html, `action="/contact"`)
	assert.Contains(t, html, "/contact/fields/email")
	assert.Contains(t, html, "/contact/reset")
	assert.Contains(t, html, `id="toast-container"`)
	for _, f := range contactform.Fields() {
		assert.Contains(t, html, `id="`+contact.FieldErrorID(f)+`"`)
	}

	assert.NotContains(t, html, `"><script>`, "values are escaped")
	assert.Contains(t, html, `value="&#34;&gt;&lt;script&gt;"`)
	assert.Contains(t, html, "Error: firstName must be at least 5 characters")
	assert.Equal(t, 1, strings.Count(html, `data-testid="error"`))
}

func TestPage_Notice(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	html := render(t, context.Background(), v.Page(contact.PageParams{Notice: contact.NoticeSubmitted}))
	assert.Contains(t, html, "Thank you! Your message has been sent.")
	assert.Contains(t, html, `action="/"`)
}

func TestPage_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := v.Page(contact.PageParams{View: contactform.New().View()}).Render(ctx, &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestPage_FieldMarkup(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	html := render(t, context.Background(), v.Page(contact.PageParams{View: contactform.New().View()}))
	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `<input type="email" id="email" name="email" value="" data-bind="email" data-on:input__debounce.300ms="@post(&#39;/fields/email&#39;)" aria-required="true">`)
	assert.Contains(t, html, `<textarea rows="5" id="message" name="message" data-bind="message" data-on:input__debounce.300ms="@post(&#39;/fields/message&#39;)"></textarea>`)
	assert.Contains(t, html, `data-on:click__prevent="@post(&#39;/reset&#39;)"`)
	assert.NotContains(t, html, `role="status"`)
}

func TestFieldError(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	html := render(t, context.Background(), v.FieldError(contact.FieldErrorParams{Field: contactform.Email}))
	assert.Equal(t, `<div class="field-error" id="email-error"></div>`, html)

	err, failed := contactform.ValidateField(contactform.LastName, "")
	require.True(t, failed)
	html = render(t, context.Background(), v.FieldError(contact.FieldErrorParams{Field: contactform.LastName, Error: &err}))
	assert.Contains(t, html, `id="lastName-error"`)
	assert.Contains(t, html, `<p data-testid="error" role="alert">Error: lastName is a required field</p>`)
}

func TestSubmission(t *testing.T) {
	t.Parallel()
	v := views.New(nil)

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		html := render(t, context.Background(), v.Submission(contact.SubmissionParams{}))
		assert.Equal(t, `<section id="submission"></section>`, html)
	})

	t.Run("without message", func(t *testing.T) {
		t.Parallel()
		view := submittedView(t, "")
		html := render(t, context.Background(), v.Submission(contact.SubmissionParams{Record: view.Submission}))
		assert.Contains(t, html, `data-testid="firstnameDisplay">Irving</dd>`)
		assert.Contains(t, html, `data-testid="lastnameDisplay">Delgado</dd>`)
		assert.Contains(t, html, `data-testid="emailDisplay">Irving@gmail.com</dd>`)
		assert.NotContains(t, html, "messageDisplay")
	})

	t.Run("with message", func(t *testing.T) {
		t.Parallel()
		view := submittedView(t, "This is a message")
		html := render(t, context.Background(), v.Submission(contact.SubmissionParams{Record: view.Submission}))
		assert.Contains(t, html, `data-testid="messageDisplay">This is a message</dd>`)
	})
}

func TestSpanish(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)
	v := views.New(tr)
	ctx := i18n.SetLocale(context.Background(), "es")

	form := contactform.New()
	require.NoError(t, form.OnFieldChange(contactform.FirstName, "Irv"))
	html := render(t, ctx, v.Page(contact.PageParams{View: form.View()}))

	assert.Contains(t, html, `<html lang="es">`)
	assert.Contains(t, html, "<h1>Formulario de contacto</h1>")
	assert.Contains(t, html, ">Nombre*</label>")
	assert.Contains(t, html, ">Mensaje</label>")
	assert.Contains(t, html, "Error: firstName debe tener al menos 5 caracteres")
}

func TestEnglishTranslationsMatchBuiltInMessages(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)
	v := views.New(tr)
	ctx := i18n.SetLocale(context.Background(), "en")

	cases := map[contactform.Field]string{
		contactform.FirstName: "123",
		contactform.LastName:  "",
		contactform.Email:     "Irving.com",
	}
	for f, value := range cases {
		err, failed := contactform.ValidateField(f, value)
		require.True(t, failed)
		html := render(t, ctx, v.FieldError(contact.FieldErrorParams{Field: f, Error: &err}))
		assert.Contains(t, html, "Error: "+err.Message, f)
	}
}

func TestTranslationsCoverBothLanguages(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
	keys := []string{
		"contact.title", "contact.submit", "contact.reset", "contact.error",
		"contact.labels.first_name", "contact.labels.last_name", "contact.labels.email", "contact.labels.message",
		"contact.submission.title", contact.NoticeSubmitted,
		"validation.required", "validation.min_length", "validation.email",
		"errors.page_title", "errors.retry", "errors.request_id",
		handler.ErrBadRequest.Key, handler.ErrNotFound.Key, handler.ErrTooManyRequests.Key,
		handler.ErrInternalServerError.Key, handler.ErrServiceUnavailable.Key,
	}
	for _, lang := range tr.SupportedLanguages() {
		for _, key := range keys {
			assert.True(t, tr.HasTranslation(lang, key), "%s: %s", lang, key)
		}
	}
}

func TestErrorViews(t *testing.T) {
	t.Parallel()
	ev := views.NewErrorViews(newTranslator(t))
	ctx := i18n.SetLocale(context.Background(), "es")

	html := render(t, ctx, ev.Page(handler.ErrorPageParams{
		Error:      "boom",
		StatusCode: http.StatusNotFound,
		RequestID:  "req-1",
		RetryURL:   "/",
	}))
	assert.Contains(t, html, "404 Algo salió mal")
	assert.Contains(t, html, `<p data-testid="error">boom</p>`)
	assert.Contains(t, html, "ID de solicitud: req-1")
	assert.Contains(t, html, `href="/"`)

	toast := render(t, ctx, ev.Toast(handler.ErrorToastParams{Message: "<slow down>", Type: "warning"}))
	assert.Equal(t, `<div role="alert" class="toast toast-warning">&lt;slow down&gt;</div>`, toast)
}

func TestErrorViews_ToastRequestID(t *testing.T) {
	t.Parallel()
	ev := views.NewErrorViews(nil)

	html := render(t, context.Background(), ev.Toast(handler.ErrorToastParams{Message: "boom", Type: "error", RequestID: "req-7"}))
	assert.Equal(t, `<div role="alert" class="toast toast-error" data-request-id="req-7">boom</div>`, html)
}

func TestErrorViews_HandlerConfig(t *testing.T) {
	t.Parallel()

	cfg := views.NewErrorViews(nil).HandlerConfig(false)
	info := handler.ClassifyError(context.Background(), handler.ErrTooManyRequests, cfg)
	assert.Equal(t, http.StatusTooManyRequests, info.StatusCode)
	assert.Equal(t, "Too many submissions. Please wait a moment and try again.", info.Message)

	cfg = views.NewErrorViews(newTranslator(t)).HandlerConfig(false)
	ctx := i18n.SetLocale(context.Background(), "es")
	info = handler.ClassifyError(ctx, handler.ErrNotFound, cfg)
	assert.Equal(t, "La página que buscas no existe.", info.Message)
}
