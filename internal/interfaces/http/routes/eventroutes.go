package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	eventhandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/event"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

type EventRouteConfig struct {
	EventHandler         *eventhandlers.EventHandler
	ParticipationHandler *eventhandlers.ParticipationHandler
	UserInEventHandler   *eventhandlers.UserInEventHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupEventRoutes(api *gin.RouterGroup, config *EventRouteConfig) {
	guard := []gin.HandlerFunc{
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequireResource(permission.ResourceEvents),
	}

	events := api.Group("/events", guard...)
	{
		events.GET("", config.EventHandler.ListEvents)
		events.POST("", config.EventHandler.CreateEvent)
		events.GET("/:id", config.EventHandler.GetEvent)
		events.PATCH("/:id", config.EventHandler.UpdateEvent)
		events.PUT("/:id", config.EventHandler.UpdateEvent)
		events.DELETE("/:id", config.EventHandler.DeleteEvent)
	}

	participants := api.Group("/participants", guard...)
	{
		participants.GET("", config.ParticipationHandler.ListParticipations)
		participants.POST("", config.ParticipationHandler.CreateParticipation)
		participants.GET("/group_by_contact", config.ParticipationHandler.GroupByContact)
		participants.GET("/:id", config.ParticipationHandler.GetParticipation)
		participants.PATCH("/:id", config.ParticipationHandler.UpdateParticipation)
		participants.PUT("/:id", config.ParticipationHandler.UpdateParticipation)
		participants.DELETE("/:id", config.ParticipationHandler.DeleteParticipation)
	}

	usersInEvents := api.Group("/users-in-events", guard...)
	{
		usersInEvents.GET("", config.UserInEventHandler.List)
		usersInEvents.POST("", config.UserInEventHandler.AddUser)
		usersInEvents.GET("/:id", config.UserInEventHandler.Get)
		usersInEvents.DELETE("/:id", config.UserInEventHandler.RemoveUser)
	}
}
