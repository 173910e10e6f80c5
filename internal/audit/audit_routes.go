package audit

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.GET("/audit", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.List)
}
