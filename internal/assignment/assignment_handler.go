package assignment

import (
	"net/http"

	assignmenterrors "resto-admin/internal/assignment/errors"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/request"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.L()
	}
	return &Handler{service: service, logger: logger.Named("assignment.handler")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("assignment request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ownerID(c *gin.Context) (int64, bool) {
	id, ok := request.ParamID(c, "ownerId")
	if !ok {
		h.fail(c, assignmenterrors.ErrInvalidOwnerID)
	}
	return id, ok
}

func (h *Handler) Current(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ownerID(c)
		if !ok {
			return
		}
		v, err := h.service.Current(c.Request.Context(), kind, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, v, nil)
	}
}

func (h *Handler) Preview(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ownerID(c)
		if !ok {
			return
		}
		var req PreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, apperror.MapValidationError(err))
			return
		}
		v, err := h.service.Preview(c.Request.Context(), kind, id, req)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, v, nil)
	}
}

func (h *Handler) Commit(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ownerID(c)
		if !ok {
			return
		}
		var req CommitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, apperror.MapValidationError(err))
			return
		}
		v, err := h.service.Commit(c.Request.Context(), kind, id, req.Assigned)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, v, nil)
	}
}
