package permission

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// defaultModel mirrors configs/rbac_model.conf and is used when no model
// path is configured.
const defaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

// Enforcer checks role policies stored in the casbin_rule table. Users are
// bound to roles with grouping rules keyed by "user:<id>".
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	var enforcer *casbin.Enforcer
	if modelPath != "" {
		enforcer, err = casbin.NewEnforcer(modelPath, adapter)
	} else {
		var m model.Model
		m, err = model.NewModelFromString(defaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to parse casbin model: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log.Named("permission"),
	}, nil
}

// Subject is the casbin subject of a user.
func Subject(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

func (e *Enforcer) Enforce(userID uint, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(Subject(userID), resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// SetUserRole replaces every role of the user with role.
func (e *Enforcer) SetUserRole(userID uint, role authorization.UserRole) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := Subject(userID)
	if _, err := e.enforcer.DeleteRolesForUser(sub); err != nil {
		return fmt.Errorf("failed to clear roles for user: %w", err)
	}
	if _, err := e.enforcer.AddRoleForUser(sub, role.String()); err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "user_id", userID, "role", role)
		return fmt.Errorf("failed to add role for user: %w", err)
	}

	e.logger.Infow("user role synced", "user_id", userID, "role", role)
	return nil
}

func (e *Enforcer) GetRolesForUser(userID uint) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetRolesForUser(Subject(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user: %w", err)
	}
	return roles, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	e.logger.Info("policy reloaded successfully")
	return nil
}
