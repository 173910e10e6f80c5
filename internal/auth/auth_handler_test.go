package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto-admin/internal/auth"
	autherrors "resto-admin/internal/auth/errors"
	"resto-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	auth.Service
	LoginFn    func(ctx context.Context, req auth.LoginRequest) (*session.Session, error)
	OAuthURLFn func(provider string) (string, error)
	LogoutFn   func(ctx context.Context, s *session.Session) error
}

func (f *fakeService) Login(ctx context.Context, req auth.LoginRequest) (*session.Session, error) {
	return f.LoginFn(ctx, req)
}

func (f *fakeService) OAuthURL(provider string) (string, error) { return f.OAuthURLFn(provider) }

func (f *fakeService) Logout(ctx context.Context, s *session.Session) error { return f.LogoutFn(ctx, s) }

func newAuthRouter(svc auth.Service, sealer *auth.Sealer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := auth.NewHandler(svc, sealer, auth.CookieConfig{Name: "admin_session", RememberTTL: time.Hour}, zap.NewNop())
	r := gin.New()
	authenticated := func(c *gin.Context) {
		session.Attach(c, &session.Session{ID: "s-1", UserID: 7, Username: "siti"})
		c.Next()
	}
	auth.RegisterRoutes(r.Group("/api/v1"), h, authenticated, func(c *gin.Context) { c.Next() })
	return r
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandler_LoginSetsCookies(t *testing.T) {
	sealer := auth.NewSealer("a-secret-that-is-long-enough-for-tests")
	svc := &fakeService{LoginFn: func(_ context.Context, req auth.LoginRequest) (*session.Session, error) {
		assert.True(t, req.Remember)
		return &session.Session{ID: "s-9", UserID: 7, Username: "siti", Remember: true, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}}
	r := newAuthRouter(svc, sealer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"siti","password":"secret","remember":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId":"s-9"`)

	sid := cookieNamed(w, "admin_session")
	require.NotNil(t, sid)
	assert.Equal(t, "s-9", sid.Value)
	assert.True(t, sid.HttpOnly)

	remembered := cookieNamed(w, "remember_user")
	require.NotNil(t, remembered)
	name, err := sealer.Open(remembered.Value)
	require.NoError(t, err)
	assert.Equal(t, "siti", name)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/remembered", nil)
	req.AddCookie(remembered)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"siti"`)
}

func TestHandler_LoginFailures(t *testing.T) {
	svc := &fakeService{LoginFn: func(context.Context, auth.LoginRequest) (*session.Session, error) {
		return nil, autherrors.ErrInvalidCredentials
	}}
	r := newAuthRouter(svc, nil)

	for body, want := range map[string]int{
		`{"username":"siti","password":"bad"}`: http.StatusUnauthorized,
		`{"username":"siti"}`:                  http.StatusBadRequest,
		`{"username":`:                         http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, body)
	}
}

func TestHandler_OAuthRedirect(t *testing.T) {
	svc := &fakeService{OAuthURLFn: func(provider string) (string, error) {
		if provider != "google" {
			return "", autherrors.ErrUnknownProvider
		}
		return "https://platform.example.com/api/auth/google", nil
	}}
	r := newAuthRouter(svc, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://platform.example.com/api/auth/google", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/github", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_LogoutClearsCookie(t *testing.T) {
	var loggedOut string
	svc := &fakeService{LogoutFn: func(_ context.Context, s *session.Session) error {
		loggedOut = s.ID
		return nil
	}}
	r := newAuthRouter(svc, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s-1", loggedOut)
	c := cookieNamed(w, "admin_session")
	require.NotNil(t, c)
	assert.Negative(t, c.MaxAge)
}

func TestHandler_Me(t *testing.T) {
	r := newAuthRouter(&fakeService{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"siti"`)
}
