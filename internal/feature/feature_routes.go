package feature

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	features := r.Group("/features")
	{
		features.GET("", middleware.RBACAuthorize(rbacService, "feature", "read"), h.List)
		features.GET("/tree", middleware.RBACAuthorize(rbacService, "feature", "read"), h.Tree)
		features.GET("/sidebar", h.Sidebar)
		features.GET("/:id", middleware.RBACAuthorize(rbacService, "feature", "read"), h.GetByID)
		features.POST("", middleware.RBACAuthorize(rbacService, "feature", "create"), h.Create)
		features.PUT("/:id", middleware.RBACAuthorize(rbacService, "feature", "update"), h.Update)
		features.DELETE("/:id", middleware.RBACAuthorize(rbacService, "feature", "delete"), h.Delete)
		features.POST("/:id/permissions", middleware.RBACAuthorize(rbacService, "feature", "update"), h.AttachPermissions)
		features.DELETE("/:id/permissions", middleware.RBACAuthorize(rbacService, "feature", "update"), h.DetachPermissions)
	}
}
