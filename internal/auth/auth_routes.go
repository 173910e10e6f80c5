package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. authenticated resolves the session; loginLimiter guards the
// credential endpoints.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticated, loginLimiter gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", loginLimiter, handler.Login)
		auth.POST("/register", loginLimiter, handler.Register)
		auth.POST("/forgot-password", loginLimiter, handler.ForgotPassword)
		auth.POST("/reset-password", loginLimiter, handler.ResetPassword)
		auth.GET("/oauth/:provider", handler.OAuthRedirect)
		auth.POST("/exchange", loginLimiter, handler.Exchange)
		auth.GET("/remembered", handler.Remembered)

		auth.GET("/me", authenticated, handler.Me)
		auth.POST("/refresh", authenticated, handler.Refresh)
		auth.POST("/logout", authenticated, handler.Logout)
	}
}
