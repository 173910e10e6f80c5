package roleerrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrRoleCodeTaken = apperror.FieldConflict("code", "role code is already in use")
)
