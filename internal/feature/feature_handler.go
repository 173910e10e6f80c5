package feature

import (
	"context"
	"net/http"

	featureerrors "resto-admin/internal/feature/errors"
	"resto-admin/internal/session"
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

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("feature.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feature.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("feature request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	features, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, features, nil)
}

func (h *Handler) Tree(c *gin.Context) {
	roots, err := h.service.Tree(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, roots, nil)
}

func (h *Handler) Sidebar(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	items, err := h.service.Sidebar(c.Request.Context(), Viewer{
		IsAdmin:    sess.IsAdmin,
		FeatureIDs: sess.FeatureIDs,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.writeServiceError(c, featureerrors.ErrInvalidFeatureID)
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.writeServiceError(c, featureerrors.ErrInvalidFeatureID)
		return
	}

	var req UpdateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	f, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.writeServiceError(c, featureerrors.ErrInvalidFeatureID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) AttachPermissions(c *gin.Context) {
	h.changePermissions(c, h.service.AttachPermissions)
}

func (h *Handler) DetachPermissions(c *gin.Context) {
	h.changePermissions(c, h.service.DetachPermissions)
}

func (h *Handler) changePermissions(c *gin.Context, apply func(ctx context.Context, id int64, ids []int64) error) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.writeServiceError(c, featureerrors.ErrInvalidFeatureID)
		return
	}

	var req PermissionIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	if err := apply(c.Request.Context(), id, req.PermissionIDs); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"featureId": id, "permissionIds": req.PermissionIDs}, nil)
}
