package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
)

func serve(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates id when missing", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "")
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("keeps valid incoming id", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "contact-form_42")
		assert.Equal(t, "contact-form_42", id)
		assert.Equal(t, "contact-form_42", rec.Header().Get(requestid.Header))
	})

	invalid := []string{
		"form@id",
		"form id",
		"../etc/passwd",
		"<script>",
		strings.Repeat("a", 129),
	}
	for _, in := range invalid {
		t.Run("replaces "+in[:min(len(in), 12)], func(t *testing.T) {
			t.Parallel()
			id, _ := serve(t, in)
			assert.NotEqual(t, in, id)
			assert.Len(t, id, 36)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "with id")
	log.InfoContext(context.Background(), "without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"req-1"`)
	assert.NotContains(t, lines[1], "request_id")

	_, ok := requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
