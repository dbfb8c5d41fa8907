package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/interfaces/http/handlers"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimit     gin.HandlerFunc
}

// SetupAuthRoutes configures the social login flow and the account endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.GET("/oauth/:provider", cfg.LoginLimit, cfg.AuthHandler.InitiateOAuth)
		auth.GET("/oauth/:provider/callback", cfg.LoginLimit, cfg.AuthHandler.HandleOAuthCallback)

		auth.POST("/refresh", cfg.LoginLimit, cfg.AuthHandler.RefreshToken)
		auth.POST("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)

		account := auth.Group("")
		account.Use(cfg.AuthMiddleware.RequireAuth())
		{
			account.GET("/user", cfg.ProfileHandler.GetUser)
			account.PATCH("/user", cfg.ProfileHandler.UpdateUser)
			account.DELETE("/social/connections/:provider", cfg.ProfileHandler.DeleteSocialConnection)
		}
	}
}
