package adapters

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

const userRolePageSize = 100

// UserRoleSourceAdapter adapts user.Repository to permission.UserRoleSource.
type UserRoleSourceAdapter struct {
	userRepo user.Repository
}

func NewUserRoleSourceAdapter(userRepo user.Repository) *UserRoleSourceAdapter {
	return &UserRoleSourceAdapter{userRepo: userRepo}
}

// ListUserRoles walks every page of users.
func (a *UserRoleSourceAdapter) ListUserRoles(ctx context.Context) ([]permission.UserRole, error) {
	var out []permission.UserRole
	for page := 1; ; page++ {
		filter := user.UserFilter{}
		filter.PageFilter = query.PageFilter{Page: page, PageSize: userRolePageSize}
		filter.SortFilter = query.SortFilter{Terms: []query.OrderTerm{{Column: "id"}}}

		users, total, err := a.userRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			out = append(out, permission.UserRole{UserID: u.ID(), Role: u.Role()})
		}
		if len(users) == 0 || int64(page*userRolePageSize) >= total {
			return out, nil
		}
	}
}
