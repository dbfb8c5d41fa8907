package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	grouphandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/group"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

type GroupRouteConfig struct {
	GroupHandler         *grouphandlers.GroupHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupGroupRoutes(api *gin.RouterGroup, config *GroupRouteConfig) {
	groups := api.Group("/groups")
	groups.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequireResource(permission.ResourceGroups),
	)
	{
		groups.GET("", config.GroupHandler.ListGroups)
		groups.POST("", config.GroupHandler.CreateGroup)
		groups.GET("/with-counts", config.GroupHandler.ListGroupsWithCounts)

		groups.GET("/:id/members", config.GroupHandler.ListMembers)
		groups.POST("/:id/members", config.GroupHandler.AddMember)
		groups.DELETE("/:id/members/:contactId", config.GroupHandler.RemoveMember)

		groups.GET("/:id", config.GroupHandler.GetGroup)
		groups.PUT("/:id", config.GroupHandler.RenameGroup)
		groups.PATCH("/:id", config.GroupHandler.RenameGroup)
		groups.DELETE("/:id", config.GroupHandler.DeleteGroup)
	}
}
