package assignmenterrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrUnknownKind = apperror.New(
		apperror.CodeNotFound,
		"unknown assignment kind",
		http.StatusNotFound,
	)
	ErrUnknownOp = apperror.New(
		apperror.CodeInvalidInput,
		"unknown assignment operation",
		http.StatusBadRequest,
	)
	ErrMissingIDs = apperror.New(
		apperror.CodeInvalidInput,
		"ids are required for this operation",
		http.StatusBadRequest,
	)
	ErrInvalidOwnerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid owner id",
		http.StatusBadRequest,
	)
	ErrUnknownItem = apperror.New(
		apperror.CodeInvalidInput,
		"assigned ids contain items that cannot be assigned here",
		http.StatusBadRequest,
	)
)
