package catalog

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts CRUD routes for every catalog resource, each guarded by its own RBAC name.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	for _, res := range Resources {
		g := r.Group(res.Route)
		read := middleware.RBACAuthorize(rbacService, res.Name, "read")

		g.GET("", read, h.List(res))
		if res.Name == "category-type" {
			g.GET("/code/:code", read, h.GetByCode(res))
		}
		g.GET("/:id", read, h.Get(res))
		g.POST("", middleware.RBACAuthorize(rbacService, res.Name, "create"), h.Create(res))
		g.PUT("/:id", middleware.RBACAuthorize(rbacService, res.Name, "update"), h.Update(res))
		g.DELETE("/:id", middleware.RBACAuthorize(rbacService, res.Name, "delete"), h.Delete(res))
	}
}
