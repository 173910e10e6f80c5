package featureerrors

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
)

var (
	ErrFeatureNotFound = apperror.New(
		apperror.CodeNotFound,
		"feature not found",
		http.StatusNotFound,
	)
	ErrInvalidFeatureID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid feature id",
		http.StatusBadRequest,
	)
	ErrFeatureCycle = apperror.New(
		apperror.CodeUpstreamDataInvalid,
		"feature hierarchy returned by the platform contains a parent cycle",
		http.StatusBadGateway,
	)
	ErrDuplicateFeature = apperror.New(
		apperror.CodeUpstreamDataInvalid,
		"feature list returned by the platform contains duplicate ids",
		http.StatusBadGateway,
	)
	ErrSelfParent = apperror.New(
		apperror.CodeInvalidInput,
		"a feature cannot be its own parent",
		http.StatusBadRequest,
	)
	ErrParentIsDescendant = apperror.New(
		apperror.CodeInvalidInput,
		"parentId must not be a descendant of the feature",
		http.StatusBadRequest,
	)
)
