package audit

import (
	"net/http"

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
	return &Handler{service: service, logger: logger.Named("audit.handler")}
}

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Resource: c.Query("resource"),
		ActorID:  c.Query("actor"),
		Page:     request.QueryInt(c, "page", 1, 1),
		PageSize: request.QueryInt(c, "limit", 20, 1),
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Error("list audit entries failed", zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	meta := response.NewPaginationMeta(page.Total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Items, &meta)
}
