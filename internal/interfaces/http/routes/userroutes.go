package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/handlers"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes registers account administration, admin only.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequireResource(permission.ResourceUsers),
	)
	{
		users.GET("", cfg.UserHandler.ListUsers)
		users.PATCH("/:id/role", cfg.UserHandler.ChangeRole)
	}
}

// SetupSystemRoutes registers the unauthenticated probes outside /api.
func SetupSystemRoutes(engine *gin.Engine, userHandler *handlers.UserHandler) {
	engine.GET("/health", userHandler.HealthCheck)
	engine.GET("/version", userHandler.Version)
}
