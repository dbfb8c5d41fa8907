package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/infrastructure/config"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/middleware"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and provides Shutdown() for graceful
// termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	c.repos = newRepositories(db, log)

	svcs, err := newServices(ctx, db, c.repos, cfg, log)
	if err != nil {
		return nil, err
	}
	c.svcs = svcs

	c.ucs = newUseCases(c.repos, c.svcs, log)
	c.hdlrs = newHandlers(c.ucs, cfg, log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.jwtService, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.svcs.enforcer, log)

	return c, nil
}

// Shutdown releases resources held by the container. The database connection
// is owned by the caller.
func (c *Container) Shutdown() {
	if c.svcs != nil && c.svcs.redis != nil {
		if err := c.svcs.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	c.log.Infow("container shut down")
}
