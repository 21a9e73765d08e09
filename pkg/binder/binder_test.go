package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/binder"
)

type contactRequest struct {
	FirstName string   `json:"firstName" form:"firstName"`
	LastName  string   `json:"lastName" form:"lastName"`
	Email     string   `json:"email" form:"email"`
	Message   string   `json:"message" form:"message"`
	Tags      []string `json:"tags,omitempty" form:"tags"`
	Subscribe bool     `json:"subscribe,omitempty" form:"subscribe"`
	Page      *int     `json:"page,omitempty" form:"page"`
	Internal  string   `json:"-" form:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{
			"firstName": {"Irving"},
			"lastName":  {"Delgado"},
			"email":     {"Irving@gmail.com"},
			"tags":      {"a", "b"},
			"subscribe": {"on"},
			"page":      {"2"},
			"Internal":  {"x"},
		}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got contactRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "Irving", got.FirstName)
		assert.Equal(t, "Delgado", got.LastName)
		assert.Equal(t, "Irving@gmail.com", got.Email)
		assert.Empty(t, got.Message)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		assert.True(t, got.Subscribe)
		require.NotNil(t, got.Page)
		assert.Equal(t, 2, *got.Page)
		assert.Empty(t, got.Internal)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("firstName", "Irving"))
		require.NoError(t, mw.WriteField("message", "line1\nline2"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got contactRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "Irving", got.FirstName)
		assert.Equal(t, "line1\nline2", got.Message)
	})

	t.Run("query string is not bound", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/?firstName=Query", strings.NewReader("lastName=Delgado"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got contactRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Empty(t, got.FirstName)
		assert.Equal(t, "Delgado", got.LastName)
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		for _, ct := range []string{"", "application/json", "text/plain"} {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
			if ct != "" {
				req.Header.Set("Content-Type", ct)
			}
			var got contactRequest
			assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable, ct)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("page=abc"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got contactRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("firstName=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.ErrorIs(t, binder.Form()(req, contactRequest{}), binder.ErrInvalidForm)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ct      string
		body    string
		headers map[string]string
		want    contactRequest
		wantErr error
	}{
		{
			name: "valid",
			ct:   "application/json; charset=utf-8",
			body: `{"firstName":"Irving","email":"Irving@gmail.com"}`,
			want: contactRequest{FirstName: "Irving", Email: "Irving@gmail.com"},
		},
		{name: "unknown field", ct: "application/json", body: `{"phone":"1"}`, wantErr: binder.ErrInvalidJSON},
		{name: "trailing data", ct: "application/json", body: `{"firstName":"a"}{}`, wantErr: binder.ErrInvalidJSON},
		{name: "malformed", ct: "application/json", body: `{"firstName":`, wantErr: binder.ErrInvalidJSON},
		{name: "empty body", ct: "application/json", body: ``, wantErr: binder.ErrInvalidJSON},
		{name: "form content type", ct: "application/x-www-form-urlencoded", body: `a=b`, wantErr: binder.ErrBinderNotApplicable},
		{
			name:    "datastar request",
			ct:      "application/json",
			body:    `{"firstName":"Irving"}`,
			headers: map[string]string{"Datastar-Request": "true"},
			wantErr: binder.ErrBinderNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.ct)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			var got contactRequest
			err := binder.JSON()(req, &got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSON_TooLarge(t *testing.T) {
	t.Parallel()
	body := `{"message":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var got contactRequest
	assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrInvalidJSON)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/fields/firstName", strings.NewReader(`{"firstName":"Irv","lastName":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Datastar-Request", "true")

		var got contactRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "Irv", got.FirstName)
	})

	t.Run("query", func(t *testing.T) {
		t.Parallel()
		q := url.Values{"datastar": {`{"email":"Irving.com"}`}}
		req := httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil)

		var got contactRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "Irving.com", got.Email)
	})

	t.Run("not datastar", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got contactRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("datastar form submission", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("firstName=Irving"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Datastar-Request", "true")

		var got contactRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"firstName":`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Datastar-Request", "true")

		var got contactRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrInvalidSignals)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type fieldRequest struct {
		Field string `path:"field"`
		ID    int    `path:"id"`
		Other string
	}

	params := map[string]string{"field": "email", "id": "7", "other": "ignored"}
	extract := func(_ *http.Request, key string) string { return params[key] }
	req := httptest.NewRequest(http.MethodPost, "/fields/email", nil)

	var got fieldRequest
	require.NoError(t, binder.Path(extract)(req, &got))
	assert.Equal(t, fieldRequest{Field: "email", ID: 7}, got)

	assert.ErrorIs(t, binder.Path(nil)(req, &got), binder.ErrInvalidPath)

	bad := func(*http.Request, string) string { return "x" }
	var typed struct {
		ID int `path:"id"`
	}
	assert.ErrorIs(t, binder.Path(bad)(req, &typed), binder.ErrInvalidPath)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type listRequest struct {
		Limit  int      `query:"limit"`
		Fields []string `query:"field"`
		Email  string   `json:"email" form:"email"`
	}

	t.Run("binds tagged fields only", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=5&field=email&field=message&email=x@y.z", nil)

		var got listRequest
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, listRequest{Limit: 5, Fields: []string{"email", "message"}}, got)
	})

	t.Run("no query string", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var got listRequest
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=ten", nil)

		var got listRequest
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrInvalidQuery)
	})
}
