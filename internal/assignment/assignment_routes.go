package assignment

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /assignments/<kind>/:ownerId for every kind in sources. Reads and previews need
// read access to the owner, commits need update access.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, sources map[Kind]Source, rbacService middleware.RBACService) {
	for _, kind := range Kinds {
		src, ok := sources[kind]
		if !ok {
			continue
		}
		read := middleware.RBACAuthorize(rbacService, src.OwnerResource(), "read")
		update := middleware.RBACAuthorize(rbacService, src.OwnerResource(), "update")

		g := r.Group("/assignments/" + string(kind) + "/:ownerId")
		g.GET("", read, h.Current(kind))
		g.POST("/preview", read, h.Preview(kind))
		g.PUT("", update, h.Commit(kind))
	}
}
