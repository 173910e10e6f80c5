package usererrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrUsernameTaken = apperror.FieldConflict("username", "Username is already taken")

	ErrEmailTaken = apperror.FieldConflict("email", "Email is already registered")

	ErrCannotBlockSelf = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot block your own account",
		http.StatusBadRequest,
	)
)
