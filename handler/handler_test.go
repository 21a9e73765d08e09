package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/binder"
)

type nameRequest struct {
	Name string `json:"name" form:"name"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func formRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWrap_BindsAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(_ handler.Context, req nameRequest) handler.Response {
			return handler.Templ(text("hello " + req.Name))
		},
		handler.WithBinders[handler.Context, nameRequest](binder.Signals(), binder.JSON(), binder.Form()),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, formRequest("name=Irving"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello Irving", rec.Body.String())
}

func TestWrap_BindErrorIsBadRequest(t *testing.T) {
	t.Parallel()

	called := false
	h := handler.Wrap(
		func(_ handler.Context, _ nameRequest) handler.Response {
			called = true
			return handler.JSON("ok")
		},
		handler.WithBinders[handler.Context, nameRequest](binder.JSON()),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.ErrBadRequest.Key)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, nameRequest) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, nameRequest](func(_ handler.Context, err error) { got = err }),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, got, handler.ErrNilResponse)
}

func TestWrap_ErrorResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, nameRequest) handler.Response {
		return handler.Error(handler.ErrNotFound)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.Wrap(func(handler.Context, nameRequest) handler.Response {
		return handler.Error(errors.New("boom"))
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestWrap_DecoratorOrder(t *testing.T) {
	t.Parallel()

	var order []string
	decorator := func(name string) handler.Decorator[handler.Context, nameRequest] {
		return func(next handler.HandlerFunc[handler.Context, nameRequest]) handler.HandlerFunc[handler.Context, nameRequest] {
			return func(ctx handler.Context, req nameRequest) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(handler.Context, nameRequest) handler.Response {
			order = append(order, "handler")
			return handler.JSON(nil)
		},
		handler.WithDecorators(decorator("outer"), decorator("inner")),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type appContext struct {
	handler.Context
	tenant string
}

func TestWrap_CustomContext(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(ctx *appContext, _ nameRequest) handler.Response {
			return handler.JSON(ctx.tenant)
		},
		handler.WithContextFactory[*appContext, nameRequest](func(w http.ResponseWriter, r *http.Request) *appContext {
			return &appContext{Context: handler.NewContext(w, r), tenant: "acme"}
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"data":"acme"}`, rec.Body.String())

	require.Panics(t, func() {
		handler.Wrap(func(*appContext, nameRequest) handler.Response { return nil }).
			ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.Nil(t, ctx.SSE())
	assert.NoError(t, ctx.Err())

	dsReq := httptest.NewRequest(http.MethodPost, "/", nil)
	dsReq.Header.Set(handler.DataStarRequestHeader, "true")
	assert.NotNil(t, handler.NewContext(httptest.NewRecorder(), dsReq).SSE())
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   bool
	}{
		{name: "plain", target: "/", want: false},
		{name: "request header", target: "/", header: map[string]string{"Datastar-Request": "true"}, want: true},
		{name: "accept event stream", target: "/", header: map[string]string{"Accept": "text/event-stream"}, want: true},
		{name: "query", target: "/?datastar=%7B%7D", want: true},
		{name: "html accept", target: "/", header: map[string]string{"Accept": "text/html"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(req))
		})
	}
}
