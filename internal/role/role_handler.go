package role

import (
	"net/http"

	roleerrors "resto-admin/internal/role/errors"
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
	return &Handler{service: service, logger: logger.Named("role.handler")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("role request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) roleID(c *gin.Context) (int64, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.fail(c, roleerrors.ErrInvalidRoleID)
	}
	return id, ok
}

func (h *Handler) List(c *gin.Context) {
	roles, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, nil)
}

func (h *Handler) Detail(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	d, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	r, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	perms, err := h.service.Permissions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) GroupedPermissions(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	groups, err := h.service.GroupedPermissions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, groups, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) AssignPermissions(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	var req PermissionIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	if err := h.service.AssignPermissions(c.Request.Context(), id, req.PermissionIDs); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roleId": id, "permissionIds": req.PermissionIDs}, nil)
}

func (h *Handler) AssignFeatures(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	var req FeatureIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	if err := h.service.AssignFeatures(c.Request.Context(), id, req.FeatureIDs); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roleId": id, "featureIds": req.FeatureIDs}, nil)
}
