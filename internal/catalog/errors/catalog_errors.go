package catalogerrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"record not found",
		http.StatusNotFound,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid record id",
		http.StatusBadRequest,
	)
	ErrInvalidBody = apperror.New(
		apperror.CodeInvalidInput,
		"request body must be a JSON object",
		http.StatusBadRequest,
	)
	ErrBodyTooLarge = apperror.New(
		apperror.CodeTooLarge,
		"request body exceeds 1 MiB",
		http.StatusRequestEntityTooLarge,
	)
	ErrInvalidCode = apperror.New(
		apperror.CodeInvalidInput,
		"code is required",
		http.StatusBadRequest,
	)
)
