package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/modules/contact"
	"github.com/dmitrymomot/contactform/modules/contact/views"
	"github.com/dmitrymomot/contactform/pkg/cookie"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	server *httptest.Server
	repo   *contactsvc.MemoryRepository
}

func newTestEnv(t *testing.T, opts ...contact.Option) *testEnv {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	repo := contactsvc.NewMemoryRepository()
	svc := contactsvc.NewService(contactsvc.NewMemoryStateStore(time.Hour, 0), repo)
	module := contact.NewModule(svc, views.New(nil), cookies, opts...)

	server := httptest.NewServer(module.Handle())
	t.Cleanup(server.Close)
	return &testEnv{server: server, repo: repo}
}

func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	return do(t, c, req)
}

func (e *testEnv) postForm(t *testing.T, c *http.Client, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, c, req)
}

func (e *testEnv) postSignals(t *testing.T, c *http.Client, path string, signals map[string]string) (*http.Response, string) {
	t.Helper()
	data, err := json.Marshal(signals)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(string(data)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.DataStarRequestHeader, "true")
	return do(t, c, req)
}

func (e *testEnv) postJSON(t *testing.T, c *http.Client, path string, v any) (*http.Response, string) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(string(data)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return do(t, c, req)
}

var validSignals = map[string]string{
	"firstName": "Irving",
	"lastName":  "Delgado",
	"email":     "Irving@gmail.com",
	"message":   "",
}

func TestPage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	resp, body := env.get(t, c, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	assert.Contains(t, body, "<h1>Contact Form</h1>")
	for _, label := range []string{"First Name*", "Last Name*", "Email*"} {
		assert.Contains(t, body, ">"+label+"</label>")
	}
	assert.Contains(t, body, ">Message</label>")
	assert.Equal(t, 1, strings.Count(body, "<button"), "the submit control is the only button")
	assert.NotContains(t, body, `data-testid="error"`)
	assert.Contains(t, body, `id="toast-container"`)
	assert.Contains(t, body, `<section id="submission"></section>`)

	u, err := url.Parse(env.server.URL)
	require.NoError(t, err)
	require.Len(t, c.Jar.Cookies(u), 1, "form id cookie is issued")
}

func TestFieldChange_Datastar(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	resp, body := env.postSignals(t, c, "/fields/firstName", map[string]string{"firstName": "123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "#firstName-error")
	assert.Contains(t, body, "Error: firstName must be at least 5 characters")
	assert.Equal(t, 1, strings.Count(body, `data-testid="error"`))

	_, body = env.postSignals(t, c, "/fields/firstName", map[string]string{"firstName": "Irving"})
	assert.NotContains(t, body, `data-testid="error"`, "the error disappears once the value is valid")

	_, page := env.get(t, c, "/")
	assert.Contains(t, page, `value="Irving"`)
}

func TestFieldChange_UnknownField(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, _ := env.postForm(t, env.client(t), "/fields/phone", url.Values{"phone": {"1"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggerExtractor_AddsFormID(t *testing.T) {
	t.Parallel()

	_, ok := contact.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	var out syncBuffer
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(&out),
		logger.WithContextExtractors(contact.LoggerExtractor()),
	)
	env := newTestEnv(t, contact.WithLogger(log))

	resp, _ := env.postForm(t, env.client(t), "/fields/phone", url.Values{"phone": {"1"}})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, out.String(), "form_id=")
}

func TestSubmit_Datastar(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	t.Run("empty form shows three errors", func(t *testing.T) {
		_, body := env.postSignals(t, c, "/", map[string]string{})
		assert.Equal(t, 3, strings.Count(body, `data-testid="error"`))
		assert.Contains(t, body, "Error: firstName is a required field")
		assert.Contains(t, body, "Error: lastName is a required field")
		assert.Contains(t, body, "Error: email is a required field")
		assert.Contains(t, body, "#message-error")
		assert.Contains(t, body, "#submission")
		assert.NotContains(t, body, "firstnameDisplay")
	})

	t.Run("missing email", func(t *testing.T) {
		_, body := env.postSignals(t, c, "/", map[string]string{"firstName": "Irving", "lastName": "Delgado"})
		assert.Equal(t, 1, strings.Count(body, `data-testid="error"`))
		assert.Contains(t, body, "Error: email is a required field")
	})

	t.Run("valid without message", func(t *testing.T) {
		_, body := env.postSignals(t, c, "/", validSignals)
		assert.NotContains(t, body, `data-testid="error"`)
		assert.Contains(t, body, `data-testid="firstnameDisplay">Irving<`)
		assert.Contains(t, body, `data-testid="lastnameDisplay">Delgado<`)
		assert.Contains(t, body, `data-testid="emailDisplay">Irving@gmail.com<`)
		assert.NotContains(t, body, "messageDisplay")
	})

	t.Run("valid with message", func(t *testing.T) {
		signals := map[string]string{"message": "This is a message"}
		for k, v := range validSignals {
			if k != "message" {
				signals[k] = v
			}
		}
		_, body := env.postSignals(t, c, "/", signals)
		assert.Contains(t, body, `data-testid="messageDisplay">This is a message<`)

		_, page := env.get(t, c, "/")
		assert.Contains(t, page, `data-testid="messageDisplay">This is a message<`)
	})
}

func TestSubmit_PlainForm(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	resp, body := env.postForm(t, c, "/", url.Values{"email": {"Irving.com"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, "redirect is followed")
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Error: email must be a valid email address")
	assert.Contains(t, body, "Error: firstName is a required field")
	assert.NotContains(t, body, "Thank you!")

	resp, body = env.postForm(t, c, "/", url.Values{
		"firstName": {"Irving"},
		"lastName":  {"Delgado"},
		"email":     {"Irving@gmail.com"},
		"message":   {"<b>hi</b>"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Thank you! Your message has been sent.")
	assert.Contains(t, body, `data-testid="firstnameDisplay">Irving<`)
	assert.Contains(t, body, `data-testid="messageDisplay">&lt;b&gt;hi&lt;/b&gt;<`)
	assert.NotContains(t, body, `data-testid="error"`)

	_, body = env.get(t, c, "/")
	assert.NotContains(t, body, "Thank you!", "the notice is shown once")

	list, err := env.repo.List(t.Context(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReset(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	_, body := env.postSignals(t, c, "/", validSignals)
	require.Contains(t, body, "firstnameDisplay")

	resp, body := env.postForm(t, c, "/reset", url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "firstnameDisplay")
	assert.NotContains(t, body, `value="Irving"`)
}

func TestForms_AreIsolatedPerVisitor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	alice, bob := env.client(t), env.client(t)

	env.postSignals(t, alice, "/fields/email", map[string]string{"email": "Irving.com"})

	_, page := env.get(t, bob, "/")
	assert.NotContains(t, page, `data-testid="error"`)

	_, page = env.get(t, alice, "/")
	assert.Contains(t, page, "Error: email must be a valid email address")
}

func TestTamperedCookieStartsNewForm(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.client(t)

	env.postSignals(t, c, "/fields/email", map[string]string{"email": "Irving.com"})

	u, err := url.Parse(env.server.URL)
	require.NoError(t, err)
	cookies := c.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	cookies[0].Value += "x"
	c.Jar.SetCookies(u, cookies)

	_, page := env.get(t, c, "/")
	assert.NotContains(t, page, `data-testid="error"`)
}

func TestSubmit_RateLimited(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       1,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	env := newTestEnv(t, contact.WithSubmitLimiter(bucket, ratelimiter.ClientIP()))
	c := env.client(t)

	resp, _ := env.postJSON(t, c, "/api/validate", validSignals)
	require.Equal(t, http.StatusOK, resp.StatusCode, "only submissions are limited")

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/", strings.NewReader(url.Values{}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ = do(t, c, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodPost, env.server.URL+"/", strings.NewReader(""))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, body := do(t, c, req)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Contains(t, body, "errors.too_many_requests")
}

func TestSubmit_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       1,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	env := newTestEnv(t, contact.WithSubmitLimiter(bucket, ratelimiter.ClientIP()))

	statuses := make([]int, 0, 5)
	for i := range 5 {
		req, err := http.NewRequest(http.MethodPost, env.server.URL+"/", strings.NewReader(""))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
		resp, _ := do(t, env.client(t), req)
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, statuses)
}

type brokenArchive struct{}

func (brokenArchive) Create(context.Context, contactsvc.Submission) error {
	return errors.New("disk full")
}

func (brokenArchive) List(context.Context, int) ([]contactsvc.Submission, error) {
	return nil, nil
}

func TestSubmit_ArchiveUnavailable(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	svc := contactsvc.NewService(contactsvc.NewMemoryStateStore(time.Hour, 0), brokenArchive{})
	server := httptest.NewServer(contact.NewModule(svc, views.New(nil), cookies).Handle())
	t.Cleanup(server.Close)
	env := &testEnv{server: server}

	values := url.Values{}
	for k, v := range validSignals {
		values.Set(k, v)
	}
	resp, _ := env.postForm(t, env.client(t), "/", values)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
