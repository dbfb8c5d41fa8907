package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dggcrm/dggcrm/internal/infrastructure/ratelimit"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/routes"

	_ "github.com/dggcrm/dggcrm/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.RedirectTrailingSlash = true

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.CSRF())

	if c.cfg.Server.EnableSwagger {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupSystemRoutes(c.engine, c.hdlrs.userHandler)

	loginLimit := middleware.RateLimit(c.svcs.rateLimiter, "login", ratelimit.RateLimitConfig{
		RequestsPerMinute: c.cfg.RateLimit.LoginPerMinute,
	}, c.log)

	api := c.engine.Group("/api")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		ProfileHandler: c.hdlrs.profileHandler,
		AuthMiddleware: c.authMiddleware,
		LoginLimit:     loginLimit,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          c.hdlrs.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupContactRoutes(api, &routes.ContactRouteConfig{
		ContactHandler:       c.hdlrs.contactHandler,
		TagHandler:           c.hdlrs.tagHandler,
		AskHandler:           c.hdlrs.askHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupEventRoutes(api, &routes.EventRouteConfig{
		EventHandler:         c.hdlrs.eventHandler,
		ParticipationHandler: c.hdlrs.participationHandler,
		UserInEventHandler:   c.hdlrs.userInEventHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupGroupRoutes(api, &routes.GroupRouteConfig{
		GroupHandler:         c.hdlrs.groupHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AskHandler:           c.hdlrs.askHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
