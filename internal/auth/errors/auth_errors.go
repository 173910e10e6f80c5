package autherrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrAccountBlocked = apperror.New(
		apperror.CodeForbidden,
		"account is blocked",
		http.StatusForbidden,
	)
	ErrSessionExpired = apperror.New(
		apperror.CodeUnauthorized,
		"session expired, please sign in again",
		http.StatusUnauthorized,
	)
	ErrUnknownProvider = apperror.New(
		apperror.CodeNotFound,
		"unknown sign-in provider",
		http.StatusNotFound,
	)
	ErrNoRememberedUser = apperror.New(
		apperror.CodeNotFound,
		"no remembered user",
		http.StatusNotFound,
	)
	ErrUsernameTaken = apperror.FieldConflict("username", "Username is already taken")
	ErrEmailTaken    = apperror.FieldConflict("email", "Email is already registered")
)
