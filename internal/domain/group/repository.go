package group

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, g *Group) error
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Group, error)
	List(ctx context.Context, filter GroupFilter) ([]*Group, int64, error)
	ListWithCounts(ctx context.Context, filter GroupFilter) ([]WithCount, int64, error)
}

type GroupFilter struct {
	query.BaseFilter
	Query string
}

type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	// DeleteByContact removes the contact from the group, returning a
	// not-found error when it was not a member.
	DeleteByContact(ctx context.Context, groupID, contactID uint) error
	ListByGroup(ctx context.Context, groupID uint, page query.PageFilter) ([]*Membership, int64, error)
	ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*Membership, error)
}
