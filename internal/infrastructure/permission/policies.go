package permission

import (
	"context"
	"fmt"

	"github.com/dggcrm/dggcrm/internal/shared/authorization"
)

// Resources guarded by the permission middleware.
const (
	ResourceContacts = "contacts"
	ResourceTags     = "tags"
	ResourceEvents   = "events"
	ResourceTickets  = "tickets"
	ResourceGroups   = "groups"
	ResourceReports  = "reports"
	ResourceUsers    = "users"

	ActionRead  = "read"
	ActionWrite = "write"
)

// rolePolicies are the static grants. needs_approval has none; admin
// inherits organizer.
var rolePolicies = [][]string{
	{string(authorization.RoleOrganizer), ResourceContacts, "*"},
	{string(authorization.RoleOrganizer), ResourceTags, "*"},
	{string(authorization.RoleOrganizer), ResourceEvents, "*"},
	{string(authorization.RoleOrganizer), ResourceTickets, "*"},
	{string(authorization.RoleOrganizer), ResourceGroups, "*"},
	{string(authorization.RoleOrganizer), ResourceReports, ActionRead},
	{string(authorization.RoleAdmin), ResourceUsers, "*"},
}

var roleInheritance = [][]string{
	{string(authorization.RoleAdmin), string(authorization.RoleOrganizer)},
}

// InitRolePolicies stores the static role grants. Existing rules are kept.
func (e *Enforcer) InitRolePolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range rolePolicies {
		if _, err := e.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	for _, g := range roleInheritance {
		if _, err := e.enforcer.AddRoleForUser(g[0], g[1]); err != nil {
			return fmt.Errorf("failed to add role inheritance %s -> %s: %w", g[0], g[1], err)
		}
	}

	e.logger.Info("role policies initialized successfully")
	return nil
}

// UserRole is the minimum a sync source must expose per user.
type UserRole struct {
	UserID uint
	Role   authorization.UserRole
}

// UserRoleSource lists every account's role.
type UserRoleSource interface {
	ListUserRoles(ctx context.Context) ([]UserRole, error)
}

// SyncUserRoles rebuilds the user grouping rules from the users table.
func (e *Enforcer) SyncUserRoles(ctx context.Context, src UserRoleSource) error {
	roles, err := src.ListUserRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list user roles: %w", err)
	}
	for _, ur := range roles {
		if err := e.SetUserRole(ur.UserID, ur.Role); err != nil {
			return err
		}
	}
	e.logger.Infow("user roles synced to casbin", "count", len(roles))
	return nil
}
