package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto-admin/internal/domain"
	"resto-admin/internal/middleware"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/contextutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-123", seen)
	})

	t.Run("generates one", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, w.Header().Get("X-Request-ID"), seen)
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		for _, bad := range []string{strings.Repeat("a", 65), "has space", "semi;colon"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", bad)
			r.ServeHTTP(w, req)

			assert.NotEqual(t, bad, seen)
			assert.Len(t, seen, 36)
		}
	})
}

type fixedRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fixedRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Session
		rbac     *fixedRBAC
		wantCode int
	}{
		{name: "no session", rbac: &fixedRBAC{allowed: true}, wantCode: http.StatusUnauthorized},
		{name: "allowed", sess: &session.Session{UserID: 4}, rbac: &fixedRBAC{allowed: true}, wantCode: http.StatusOK},
		{name: "denied", sess: &session.Session{UserID: 4}, rbac: &fixedRBAC{}, wantCode: http.StatusForbidden},
		{name: "enforcer error", sess: &session.Session{UserID: 4}, rbac: &fixedRBAC{err: errors.New("bad model")}, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.sess != nil {
					session.Attach(c, tt.sess)
				}
				c.Next()
			})
			r.GET("/", middleware.RBACAuthorize(tt.rbac, "role", "read"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.sess != nil {
				assert.Equal(t, "4", tt.rbac.got.UserID)
				assert.Equal(t, "role", tt.rbac.got.Resource)
				assert.Equal(t, "read", tt.rbac.got.Action)
			}
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(rate.Every(time.Hour), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other clients keep their own bucket")
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestIdempotency(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0

	r := gin.New()
	r.POST("/bulk", middleware.Idempotency(rdb, time.Hour), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func(key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bulk", nil)
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		r.ServeHTTP(w, req)
		return w
	}

	first := send("k1")
	replay := send("k1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, "true", replay.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, calls)

	send("")
	send("")
	assert.Equal(t, 3, calls, "requests without a key are never deduplicated")

	require.NoError(t, mr.Set("idemp:/bulk::k2:lock", "locked"))
	assert.Equal(t, http.StatusConflict, send("k2").Code)
	assert.Equal(t, 3, calls)
}

type refresher struct {
	token string
	err   error
}

func (f refresher) EnsureFresh(_ context.Context, s *session.Session) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *s
	out.AccessToken = f.token
	return &out, nil
}

func TestAuthMiddleware(t *testing.T) {
	_, rdb := newRedis(t)
	store := session.NewRedisStore(rdb)
	sess := &session.Session{UserID: 12, AccessToken: "old", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), sess))

	r := gin.New()
	var token, userID string
	r.GET("/me", middleware.AuthMiddleware(store, refresher{token: "new"}, middleware.SessionTTL{}, "sid"), func(c *gin.Context) {
		token = contextutil.GetAccessToken(c.Request.Context())
		userID = c.GetString("user_id")
		c.Status(http.StatusOK)
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "new", token)
		assert.Equal(t, "12", userID)
	})

	t.Run("bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+sess.ID)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_SlidesExpiry(t *testing.T) {
	_, rdb := newRedis(t)
	store := session.NewRedisStore(rdb)
	ctx := context.Background()

	short := &session.Session{UserID: 12, AccessToken: "a", ExpiresAt: time.Now().Add(time.Minute)}
	remembered := &session.Session{UserID: 13, AccessToken: "b", Remember: true, ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, short))
	require.NoError(t, store.Save(ctx, remembered))

	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(store, nil, middleware.SessionTTL{
		Default:  time.Hour,
		Remember: 24 * time.Hour,
	}, "sid"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, tc := range []struct {
		name string
		sess *session.Session
		want time.Duration
	}{
		{"default ttl", short, time.Hour},
		{"remember ttl", remembered, 24 * time.Hour},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tc.sess.ID)
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			loaded, err := store.Load(ctx, tc.sess.ID)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(tc.want), loaded.ExpiresAt, 5*time.Second)
			assert.Greater(t, rdb.TTL(ctx, "session:"+tc.sess.ID).Val(), tc.want-time.Minute)
		})
	}
}
