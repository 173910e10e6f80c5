package permission

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /permissions. idempotency guards the bulk endpoint against resubmission.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, idempotency gin.HandlerFunc) {
	read := middleware.RBACAuthorize(rbacService, "permission", "read")

	perms := r.Group("/permissions")
	{
		perms.GET("", read, h.List)
		perms.GET("/resources", read, h.Resources)
		perms.GET("/actions", read, h.Actions)
		perms.GET("/templates", read, h.Templates)
		perms.POST("/templates/preview", read, h.Preview)
		perms.POST("/bulk-from-template",
			middleware.RBACAuthorize(rbacService, "permission", "create"),
			idempotency,
			h.BulkCreateFromTemplate,
		)
		perms.GET("/:id", read, h.GetByID)
		perms.POST("", middleware.RBACAuthorize(rbacService, "permission", "create"), h.Create)
		perms.PUT("/:id", middleware.RBACAuthorize(rbacService, "permission", "update"), h.Update)
		perms.DELETE("/:id", middleware.RBACAuthorize(rbacService, "permission", "delete"), h.Delete)
	}
}
