package role

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, "role", "read")
	update := middleware.RBACAuthorize(rbacService, "role", "update")

	roles := r.Group("/roles")
	{
		roles.GET("", read, h.List)
		roles.GET("/:id", read, h.GetByID)
		roles.GET("/:id/detail", read, h.Detail)
		roles.GET("/:id/permissions", read, h.Permissions)
		roles.GET("/:id/permissions/grouped", read, h.GroupedPermissions)
		roles.GET("/:id/permissions/stats", read, h.Stats)
		roles.POST("", middleware.RBACAuthorize(rbacService, "role", "create"), h.Create)
		roles.PUT("/:id", update, h.Update)
		roles.PUT("/:id/permissions", update, h.AssignPermissions)
		roles.PUT("/:id/features", update, h.AssignFeatures)
		roles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "role", "delete"), h.Delete)
	}
}
