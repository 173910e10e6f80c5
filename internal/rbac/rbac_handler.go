package rbac

import (
	"net/http"
	"strings"

	"resto-admin/internal/domain"
	"resto-admin/internal/middleware"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, logger: zap.L().Named("rbac.handler")}
}

// Enforce answers whether the current session may perform an action. The UI uses it to hide controls.
func (h *Handler) Enforce(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}

	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resource := strings.TrimSpace(req.Resource)
	action := strings.TrimSpace(req.Action)
	if resource == "" || action == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "resource and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(middleware.EnforceRequestFor(sess, resource, action))
	if err != nil {
		h.logger.Error("enforce", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

// Grants lists the resource/action pairs held by the current session.
func (h *Handler) Grants(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}
	grants := sess.Grants
	if grants == nil {
		grants = []session.Grant{}
	}
	response.Success(c, http.StatusOK, gin.H{"isAdmin": sess.IsAdmin, "grants": grants}, nil)
}
