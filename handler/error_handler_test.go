package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

func errorPage(p handler.ErrorPageParams) templ.Component {
	return text("Page: " + p.Error)
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return text(`<div class="toast ` + p.Type + `">` + p.Message + `</div>`)
}

func newErrorHandler(buf *bytes.Buffer, cfg handler.ErrorHandlerConfig) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(slog.New(slog.NewTextHandler(buf, nil)), cfg)
}

func TestNewErrorHandler_HTMLPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
		level   string
	}{
		{name: "generic", err: errors.New("db down"), code: http.StatusInternalServerError, message: "Page: errors.internal", level: "level=ERROR"},
		{name: "http error", err: handler.ErrNotFound, code: http.StatusNotFound, message: "Page: errors.not_found", level: "level=WARN"},
		{
			name:    "validation",
			err:     validator.ValidationErrors{{Field: "email", Message: "email is a required field"}},
			code:    http.StatusUnprocessableEntity,
			message: "Page: email is a required field",
			level:   "level=WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var logs bytes.Buffer
			h := newErrorHandler(&logs, handler.ErrorHandlerConfig{ErrorPage: errorPage})

			rec := httptest.NewRecorder()
			h(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/contact", nil)), tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, rec.Body.String())
			assert.Contains(t, logs.String(), "request error")
			assert.Contains(t, logs.String(), tt.level)
			assert.Contains(t, logs.String(), "path=/contact")
		})
	}
}

func TestNewErrorHandler_Translate(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newErrorHandler(&logs, handler.ErrorHandlerConfig{
		ErrorPage: errorPage,
		Translate: func(_ context.Context, key string) string {
			if key == "errors.too_many_requests" {
				return "Demasiadas solicitudes"
			}
			return key
		},
	})

	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/", nil)), handler.ErrTooManyRequests)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Page: Demasiadas solicitudes", rec.Body.String())
}

func TestNewErrorHandler_NoPageConfigured(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newErrorHandler(&logs, handler.ErrorHandlerConfig{})

	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors.forbidden")
}

func TestNewErrorHandler_DataStarToast(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newErrorHandler(&logs, handler.ErrorHandlerConfig{ErrorPage: errorPage, ErrorToast: errorToast})

	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, datastarRequest(http.MethodPost, "/")), handler.ErrTooManyRequests)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "selector #toast-container")
	assert.Contains(t, body, "mode prepend")
	assert.Contains(t, body, `<div class="toast warning">errors.too_many_requests</div>`)
}

func TestNewErrorHandler_JSONClient(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newErrorHandler(&logs, handler.ErrorHandlerConfig{ErrorPage: errorPage})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, req), handler.ErrServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "errors.service_unavailable", body.Error.Code)
}

func TestClassifyError_ShowDetails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	err := errors.New("connection refused")

	hidden := handler.ClassifyError(ctx, err, handler.ErrorHandlerConfig{})
	assert.Equal(t, "errors.internal", hidden.Message)
	assert.Equal(t, "error", hidden.Type)
	assert.Equal(t, slog.LevelError, hidden.LogLevel)

	shown := handler.ClassifyError(ctx, err, handler.ErrorHandlerConfig{ShowDetails: true})
	assert.Equal(t, "errors.internal: connection refused", shown.Message)

	httpErr := handler.ClassifyError(ctx, errors.Join(handler.ErrBadRequest, err), handler.ErrorHandlerConfig{ShowDetails: true})
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "errors.bad_request", httpErr.Message)
}
