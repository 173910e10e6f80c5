package permission

import (
	"net/http"

	permissionerrors "resto-admin/internal/permission/errors"
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
	return &Handler{service: service, logger: logger.Named("permission.handler")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("permission request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindFail(c *gin.Context, err error) {
	h.fail(c, apperror.MapValidationError(err))
}

func (h *Handler) List(c *gin.Context) {
	perms, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.fail(c, permissionerrors.ErrInvalidPermissionID)
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.fail(c, permissionerrors.ErrInvalidPermissionID)
		return
	}

	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.fail(c, permissionerrors.ErrInvalidPermissionID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Resources(c *gin.Context) {
	resources, err := h.service.Resources(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resources, nil)
}

func (h *Handler) Actions(c *gin.Context) {
	actions, err := h.service.Actions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, actions, nil)
}

func (h *Handler) Templates(c *gin.Context) {
	set, err := h.service.Templates(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, set, nil)
}

func (h *Handler) Preview(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, preview, nil)
}

func (h *Handler) BulkCreateFromTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	if req.empty() {
		h.fail(c, permissionerrors.ErrEmptySelection)
		return
	}

	created, err := h.service.BulkCreateFromTemplate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, nil)
}
