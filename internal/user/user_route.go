package user

import (
	"resto-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	users := r.Group("/users")
	{
		users.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.Update,
		)

		users.PUT("/:id/roles",
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.AssignRoles,
		)

		users.PATCH("/:id/blocked",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.SetBlocked,
		)

		users.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "user", "delete"),
			handler.Delete,
		)
	}
}
