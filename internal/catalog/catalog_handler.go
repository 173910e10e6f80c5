package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	catalogerrors "resto-admin/internal/catalog/errors"
	"resto-admin/internal/platform"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/request"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.L()
	}
	return &Handler{service: service, logger: logger.Named("catalog.handler")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("catalog request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) relay(c *gin.Context, status int, p platform.Payload, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Passthrough(c, status, p.Data, p.Meta)
}

func readBody(c *gin.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, catalogerrors.ErrBodyTooLarge
		}
		return nil, catalogerrors.ErrInvalidBody
	}
	return body, nil
}

func (h *Handler) recordID(c *gin.Context) (int64, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		h.fail(c, catalogerrors.ErrInvalidRecordID)
	}
	return id, ok
}

func (h *Handler) List(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.List(c.Request.Context(), res, c.Request.URL.Query())
		h.relay(c, http.StatusOK, p, err)
	}
}

func (h *Handler) Get(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		p, err := h.service.Get(c.Request.Context(), res, id)
		h.relay(c, http.StatusOK, p, err)
	}
}

func (h *Handler) GetByCode(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.GetByCode(c.Request.Context(), res, c.Param("code"))
		h.relay(c, http.StatusOK, p, err)
	}
}

func (h *Handler) Create(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := readBody(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		p, err := h.service.Create(c.Request.Context(), res, body)
		h.relay(c, http.StatusCreated, p, err)
	}
}

func (h *Handler) Update(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		body, err := readBody(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		p, err := h.service.Update(c.Request.Context(), res, id, body)
		h.relay(c, http.StatusOK, p, err)
	}
}

func (h *Handler) Delete(res Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		if err := h.service.Delete(c.Request.Context(), res, id); err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
	}
}
