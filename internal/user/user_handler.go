package user

import (
	"net/http"

	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/request"
	"resto-admin/internal/shared/response"
	usererrors "resto-admin/internal/user/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("user request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) userID(c *gin.Context) (int64, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.writeError(c, usererrors.ErrInvalidUserID)
	}
	return id, ok
}

func (h *Handler) GetAll(c *gin.Context) {
	q := ListQuery{
		Q:        c.Query("q"),
		SortBy:   c.DefaultQuery("sortBy", "username"),
		SortDir:  c.DefaultQuery("sortDir", "asc"),
		Page:     request.QueryInt(c, "page", 1, 1),
		PageSize: request.QueryInt(c, "limit", 10, 1),
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	meta := response.NewPaginationMeta(page.Total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, page.Items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) AssignRoles(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}
	if err := h.svc.AssignRoles(c.Request.Context(), id, req.RoleIDs); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userId": id, "roleIds": req.RoleIDs}, nil)
}

func (h *Handler) SetBlocked(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}
	if err := h.svc.SetBlocked(c.Request.Context(), id, *req.IsBlocked); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userId": id, "isBlocked": *req.IsBlocked}, nil)
}
