package response

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 && total > 0 {
		pages := total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}
		totalPages = int(pages)
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Meta  any  `json:"meta,omitempty"`
	Error any  `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	env := ApiEnvelope{Ok: true, Data: data}
	if meta != nil {
		env.Meta = meta
	}
	c.JSON(status, env)
}

// Passthrough relays data and meta exactly as the platform API returned them.
func Passthrough(c *gin.Context, status int, data, meta json.RawMessage) {
	env := ApiEnvelope{Ok: true}
	if len(data) > 0 {
		env.Data = data
	}
	if len(meta) > 0 {
		env.Meta = meta
	}
	c.JSON(status, env)
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
