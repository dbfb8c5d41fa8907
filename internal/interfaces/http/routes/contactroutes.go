package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	contacthandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/contact"
	tickethandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/ticket"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

type ContactRouteConfig struct {
	ContactHandler       *contacthandlers.ContactHandler
	TagHandler           *contacthandlers.TagHandler
	AskHandler           *tickethandlers.AskHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupContactRoutes(api *gin.RouterGroup, config *ContactRouteConfig) {
	perm := config.PermissionMiddleware

	contacts := api.Group("/contacts")
	contacts.Use(config.AuthMiddleware.RequireAuth())
	{
		// Register specific paths BEFORE parameterized paths
		contacts.GET("", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.ListContacts)
		contacts.POST("", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.CreateContact)
		contacts.GET("/search", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.ListContacts)
		contacts.GET("/with-relations", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.ListWithRelations)
		contacts.POST("/person-and-tags", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.UpsertPersonAndTags)

		contacts.GET("/:id/activities", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.ListActivities)
		contacts.POST("/:id/activities", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.AppendActivity)
		contacts.GET("/:id/acceptance-rate",
			perm.RequirePermission(permission.ResourceReports, permission.ActionRead),
			config.AskHandler.AcceptanceRate)
		contacts.GET("/:id/acceptance-stats",
			perm.RequirePermission(permission.ResourceReports, permission.ActionRead),
			config.AskHandler.AcceptanceRate)

		contacts.GET("/:id", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.GetContact)
		contacts.PATCH("/:id", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.UpdateContact)
		contacts.PUT("/:id", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.UpdateContact)
		contacts.DELETE("/:id", perm.RequireResource(permission.ResourceContacts), config.ContactHandler.DeleteContact)
	}

	tags := api.Group("/tags")
	tags.Use(config.AuthMiddleware.RequireAuth(), perm.RequireResource(permission.ResourceTags))
	{
		tags.GET("", config.TagHandler.ListTags)
		tags.POST("", config.TagHandler.CreateTag)
		tags.GET("/:id", config.TagHandler.GetTag)
		tags.PATCH("/:id", config.TagHandler.UpdateTag)
		tags.PUT("/:id", config.TagHandler.UpdateTag)
		tags.DELETE("/:id", config.TagHandler.DeleteTag)
	}

	assignments := api.Group("/tag-assignments")
	assignments.Use(config.AuthMiddleware.RequireAuth(), perm.RequireResource(permission.ResourceTags))
	{
		assignments.GET("", config.TagHandler.ListAssignments)
		assignments.POST("", config.TagHandler.AssignTag)
		assignments.GET("/:id", config.TagHandler.GetAssignment)
		assignments.DELETE("/:id", config.TagHandler.UnassignTag)
	}
}
