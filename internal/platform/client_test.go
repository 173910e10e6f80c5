package platform_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"resto-admin/internal/config"
	"resto-admin/internal/platform"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, h http.HandlerFunc) *platform.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return platform.NewClient(config.PlatformConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryCount: 2,
	}, zap.NewNop())
}

type role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestClient_GetUnwrapsEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/roles", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Admin"}],"meta":{"total":1}}`)
	})

	ctx := contextutil.WithAccessToken(context.Background(), "tok-1")
	var out []role
	err := c.Get(ctx, "/roles", url.Values{"page": {"2"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, []role{{ID: 1, Name: "Admin"}}, out)
}

func TestClient_GetBareBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":4,"name":"Cashier"}`)
	})

	var out role
	require.NoError(t, c.Get(context.Background(), "/roles/4", nil, &out))
	assert.Equal(t, role{ID: 4, Name: "Cashier"}, out)
}

func TestClient_RawKeepsMeta(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[],"meta":{"total":0,"page":1}}`)
	})

	p, err := c.Raw(context.Background(), http.MethodGet, "/exam", nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(p.Data))
	assert.JSONEq(t, `{"total":0,"page":1}`, string(p.Meta))
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		code   string
		msg    string
	}{
		{http.StatusNotFound, `{"message":"Role not found"}`, apperror.CodeNotFound, "Role not found"},
		{http.StatusConflict, `{"message":"Username already exists","field":"username"}`, apperror.CodeConflict, "Username already exists"},
		{http.StatusBadRequest, `{"message":["name should not be empty"]}`, apperror.CodeInvalidInput, "name should not be empty"},
		{http.StatusUnauthorized, `{}`, apperror.CodeUnauthorized, apperror.ErrUnauthorized.Message},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			err := c.Post(context.Background(), "/roles", map[string]string{"name": ""}, nil)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
			assert.Equal(t, tc.msg, appErr.Message)
			assert.True(t, platform.IsStatus(err, tc.status))
		})
	}
}

func TestClient_RetriesGetOnly(t *testing.T) {
	t.Run("get is retried after 5xx", func(t *testing.T) {
		var calls int32
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []role{{ID: 1}}})
		})

		var out []role
		require.NoError(t, c.Get(context.Background(), "/roles", nil, &out))
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("post is not retried", func(t *testing.T) {
		var calls int32
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := c.Post(context.Background(), "/roles", role{Name: "x"}, nil)
		assert.ErrorIs(t, err, apperror.ErrUpstream)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
