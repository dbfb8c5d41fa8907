package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// PermissionChecker answers whether a user may perform action on resource.
type PermissionChecker interface {
	Enforce(userID uint, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.check(c, resource, action)
	}
}

// RequireResource picks the read action for safe methods and write for
// everything else.
func (m *PermissionMiddleware) RequireResource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		action := permission.ActionWrite
		if isSafeMethod(c.Request.Method) {
			action = permission.ActionRead
		}
		m.check(c, resource, action)
	}
}

func (m *PermissionMiddleware) check(c *gin.Context, resource, action string) {
	userID := utils.GetActorID(c)
	if userID == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		c.Abort()
		return
	}

	allowed, err := m.checker.Enforce(*userID, resource, action)
	if err != nil {
		m.logger.Errorw("permission check failed", "error", err, "user_id", *userID, "resource", resource, "action", action)
		utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
		c.Abort()
		return
	}

	if !allowed {
		m.logger.Warnw("permission denied", "user_id", *userID, "resource", resource, "action", action)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
		c.Abort()
		return
	}

	c.Next()
}
