package auth

import (
	"context"
	"net/http"

	autherrors "resto-admin/internal/auth/errors"
	"resto-admin/internal/platform"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Login(ctx context.Context, username, password string) (Tokens, error)
	Register(ctx context.Context, req RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Exchange(ctx context.Context, code string) (Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	// Me resolves the user owning the access token carried by ctx.
	Me(ctx context.Context) (Profile, error)
	Logout(ctx context.Context) error
}

type repository struct {
	api platform.Requester
}

func NewRepository(api platform.Requester) Repository {
	return &repository{api: api}
}

func (r *repository) Login(ctx context.Context, username, password string) (Tokens, error) {
	var out Tokens
	err := r.api.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if platform.IsStatus(err, http.StatusUnauthorized) || platform.IsStatus(err, http.StatusNotFound) {
		return Tokens{}, autherrors.ErrInvalidCredentials
	}
	if platform.IsStatus(err, http.StatusForbidden) {
		return Tokens{}, autherrors.ErrAccountBlocked
	}
	return out, err
}

// Register maps a duplicate account to the conflicting field so the form can highlight it.
func (r *repository) Register(ctx context.Context, req RegisterRequest) error {
	err := r.api.Post(ctx, "/auth/register", req, nil)
	field, conflict := platform.ConflictField(err)
	if !conflict {
		return err
	}
	if field == "email" {
		return autherrors.ErrEmailTaken.WithErr(err)
	}
	return autherrors.ErrUsernameTaken.WithErr(err)
}

func (r *repository) ForgotPassword(ctx context.Context, email string) error {
	return r.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (r *repository) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return r.api.Post(ctx, "/auth/reset-password", req, nil)
}

func (r *repository) Exchange(ctx context.Context, code string) (Tokens, error) {
	var out Tokens
	err := r.api.Post(ctx, "/auth/token", map[string]string{"code": code}, &out)
	if platform.IsStatus(err, http.StatusUnauthorized) || platform.IsStatus(err, http.StatusBadRequest) {
		return Tokens{}, autherrors.ErrInvalidCredentials
	}
	return out, err
}

func (r *repository) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	var out Tokens
	err := r.api.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken}, &out)
	if platform.IsStatus(err, http.StatusUnauthorized) || platform.IsStatus(err, http.StatusBadRequest) {
		return Tokens{}, autherrors.ErrSessionExpired
	}
	return out, err
}

func (r *repository) Me(ctx context.Context) (Profile, error) {
	var out Profile
	err := r.api.Get(ctx, "/auth/me", nil, &out)
	if platform.IsStatus(err, http.StatusUnauthorized) {
		return Profile{}, autherrors.ErrSessionExpired
	}
	return out, err
}

func (r *repository) Logout(ctx context.Context) error {
	return r.api.Post(ctx, "/auth/logout", nil, nil)
}
