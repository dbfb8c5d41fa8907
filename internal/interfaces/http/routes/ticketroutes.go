package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	tickethandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/ticket"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AskHandler           *tickethandlers.AskHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequireResource(permission.ResourceTickets),
	)
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)
		tickets.GET("/group_by_contact",
			config.TicketHandler.GroupByContact)
		tickets.PUT("/asks/update-by-keys",
			config.AskHandler.UpdateAskByKeys)
		tickets.PATCH("/asks/update-by-keys",
			config.AskHandler.UpdateAskByKeys)

		// Ticket actions
		tickets.POST("/:id/claim",
			config.TicketHandler.ClaimTicket)
		tickets.POST("/:id/unclaim",
			config.TicketHandler.UnclaimTicket)
		tickets.POST("/:id/assign",
			config.TicketHandler.AssignTicket)
		tickets.POST("/:id/comment",
			config.TicketHandler.AddComment)
		tickets.GET("/:id/comments",
			config.TicketHandler.ListComments)
		tickets.GET("/:id/audit-logs",
			config.TicketHandler.ListAuditLogs)
		tickets.GET("/:id/audit",
			config.TicketHandler.ListAuditLogs)
		tickets.GET("/:id/timeline",
			config.TicketHandler.GetTimeline)

		tickets.GET("/:id/asks",
			config.AskHandler.ListAsks)
		tickets.POST("/:id/asks",
			config.AskHandler.CreateAsk)
		tickets.PATCH("/:id/asks/:askId",
			config.AskHandler.UpdateAsk)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.PUT("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			config.TicketHandler.DeleteTicket)
	}
}
