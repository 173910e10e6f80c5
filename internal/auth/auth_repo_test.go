package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resto-admin/internal/auth"
	autherrors "resto-admin/internal/auth/errors"
	"resto-admin/internal/config"
	"resto-admin/internal/platform"
	"resto-admin/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newPlatformRepo(t *testing.T, status int, body string) auth.Repository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return auth.NewRepository(platform.NewClient(config.PlatformConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, zap.NewNop()))
}

func TestRepository_RegisterConflictNamesField(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      error
		wantField string
	}{
		{"email in message", `{"message":"Email already exists"}`, autherrors.ErrEmailTaken, "email"},
		{"field from platform", `{"message":"duplicate","field":"username"}`, autherrors.ErrUsernameTaken, "username"},
		{"username by default", `{"message":"duplicate key"}`, autherrors.ErrUsernameTaken, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPlatformRepo(t, http.StatusConflict, tt.body)

			err := repo.Register(context.Background(), auth.RegisterRequest{
				Username: "dina",
				Email:    "dina@resto.test",
				Password: "secret123",
			})

			assert.ErrorIs(t, err, tt.want)
			httpErr := apperror.ToHTTP(err)
			assert.Equal(t, http.StatusConflict, httpErr.Status)
			assert.Equal(t, map[string]string{"field": tt.wantField}, httpErr.Details)
		})
	}
}

func TestRepository_RegisterPassesOtherErrors(t *testing.T) {
	repo := newPlatformRepo(t, http.StatusBadRequest, `{"message":"password too weak"}`)

	err := repo.Register(context.Background(), auth.RegisterRequest{Username: "dina"})

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "password too weak", httpErr.Message)
}

func TestRepository_RegisterSucceeds(t *testing.T) {
	repo := newPlatformRepo(t, http.StatusCreated, `{"data":{"id":9}}`)
	assert.NoError(t, repo.Register(context.Background(), auth.RegisterRequest{Username: "dina"}))
}
