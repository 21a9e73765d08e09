package ratelimiter_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestMiddleware(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(b, ratelimiter.ClientIP())(http.HandlerFunc(ok))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, send().Code)

	limited := send()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_CustomHandlers(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

	h := ratelimiter.Middleware(b, ratelimiter.Static("all"),
		ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, _ *http.Request, res *ratelimiter.Result) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("slow down"))
		}),
	)(http.HandlerFunc(ok))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "slow down", rec.Body.String())
}

type limiterFunc func(ctx context.Context, key string) (*ratelimiter.Result, error)

func (f limiterFunc) Allow(ctx context.Context, key string) (*ratelimiter.Result, error) {
	return f(ctx, key)
}

func TestMiddleware_StoreError(t *testing.T) {
	t.Parallel()

	var gotErr error
	failing := limiterFunc(func(context.Context, string) (*ratelimiter.Result, error) {
		return nil, errors.New("redis down")
	})
	h := ratelimiter.Middleware(failing, ratelimiter.Static("k"),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusServiceUnavailable)
		}),
	)(http.HandlerFunc(ok))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Error(t, gotErr)
}

func TestMiddleware_EmptyKeyPasses(t *testing.T) {
	t.Parallel()

	called := false
	never := limiterFunc(func(context.Context, string) (*ratelimiter.Result, error) {
		called = true
		return nil, nil
	})
	h := ratelimiter.Middleware(never, func(*http.Request) string { return "" })(http.HandlerFunc(ok))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trusted []string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "203.0.113.7:5555", want: "203.0.113.7"},
		{name: "remote addr without port", remote: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", remote: "[::ffff:203.0.113.7]:443", want: "203.0.113.7"},
		{name: "untrusted header ignored", headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, remote: "10.0.0.1:1", want: "10.0.0.1"},
		{
			name:    "right-most forwarded address",
			trusted: []string{"X-Forwarded-For"},
			headers: map[string]string{"X-Forwarded-For": "203.0.113.66, 198.51.100.1, 10.0.0.2"},
			remote:  "10.0.0.1:1",
			want:    "10.0.0.2",
		},
		{
			name:    "trailing garbage skipped",
			trusted: []string{"X-Forwarded-For"},
			headers: map[string]string{"X-Forwarded-For": "203.0.113.66, 198.51.100.1, garbage"},
			remote:  "10.0.0.1:1",
			want:    "198.51.100.1",
		},
		{
			name:    "empty trusted header falls back",
			trusted: []string{"X-Forwarded-For"},
			remote:  "10.0.0.1:1",
			want:    "10.0.0.1",
		},
		{
			name:    "header order",
			trusted: []string{"CF-Connecting-IP", "X-Forwarded-For"},
			headers: map[string]string{"CF-Connecting-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.1"},
			remote:  "10.0.0.1:1",
			want:    "203.0.113.9",
		},
		{name: "unparseable", remote: "not-an-ip", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ratelimiter.ClientIP(tt.trusted...)(req))
		})
	}
}

func TestClientIP_SpoofedForwardedFor(t *testing.T) {
	t.Parallel()

	key := ratelimiter.ClientIP("X-Forwarded-For")
	seen := map[string]bool{}
	for i := range 5 {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1"
		req.Header.Add("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Add("X-Forwarded-For", "203.0.113.7")
		seen[key(req)] = true
	}
	assert.Equal(t, map[string]bool{"203.0.113.7": true}, seen, "client-chosen entries do not change the key")
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1"

	assert.Equal(t, "submit:203.0.113.7", ratelimiter.Composite(ratelimiter.Static("submit"), ratelimiter.ClientIP())(req))
	assert.Equal(t, "submit", ratelimiter.Composite(ratelimiter.Static("submit"), ratelimiter.Static(""))(req))
	assert.Empty(t, ratelimiter.Composite()(req))

	long := ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(req)
	assert.LessOrEqual(t, len(long), 13)
	assert.Equal(t, long, ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(req), "hash is stable")
}
