package permissionerrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrPermissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"permission not found",
		http.StatusNotFound,
	)
	ErrInvalidPermissionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid permission id",
		http.StatusBadRequest,
	)
	ErrUnknownResource = apperror.New(
		apperror.CodeNotFound,
		"no permission template exists for this resource",
		http.StatusNotFound,
	)
	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"action is not part of the resource template",
		http.StatusBadRequest,
	)
	ErrUnknownSelectionOp = apperror.New(
		apperror.CodeInvalidInput,
		"unknown selection op",
		http.StatusBadRequest,
	)
	ErrEmptySelection = apperror.New(
		apperror.CodeInvalidInput,
		"select at least one action",
		http.StatusBadRequest,
	)
)
