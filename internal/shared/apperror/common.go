package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"The platform API is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrUpstream = New(
		CodeUpstreamError,
		"The platform API returned an unexpected error",
		http.StatusBadGateway,
	)
)

// RequiredField builds a validation error for a missing field.
func RequiredField(field string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    field + " is required",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

// InvalidField builds a validation error for a malformed field.
func InvalidField(field string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    field + " is invalid",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

// FieldConflict is a conflict scoped to one input field, e.g. a taken username.
func FieldConflict(field, message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Field:      field,
	}
}
