package mappers

import (
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
)

// GroupMapper handles the conversion between group domain entities and persistence models.
type GroupMapper interface {
	ToModel(g *group.Group) *models.GroupModel
	ToDomain(model *models.GroupModel) (*group.Group, error)
}

type GroupMapperImpl struct{}

func NewGroupMapper() GroupMapper {
	return &GroupMapperImpl{}
}

func (m *GroupMapperImpl) ToModel(g *group.Group) *models.GroupModel {
	if g == nil {
		return nil
	}
	return &models.GroupModel{
		ID:         g.ID(),
		Name:       g.Name(),
		CreatedAt:  g.CreatedAt(),
		ModifiedAt: g.ModifiedAt(),
	}
}

func (m *GroupMapperImpl) ToDomain(model *models.GroupModel) (*group.Group, error) {
	if model == nil {
		return nil, nil
	}
	return group.ReconstructGroup(model.ID, model.Name, model.CreatedAt.UTC(), model.ModifiedAt.UTC())
}

func MembershipToModel(m *group.Membership) *models.GroupMembershipModel {
	return &models.GroupMembershipModel{
		ID:          m.ID,
		GroupID:     m.GroupID,
		ContactID:   m.ContactID,
		AccessLevel: int(m.AccessLevel),
		CreatedAt:   m.CreatedAt,
	}
}

func MembershipToDomain(model *models.GroupMembershipModel) *group.Membership {
	return &group.Membership{
		ID:          model.ID,
		GroupID:     model.GroupID,
		ContactID:   model.ContactID,
		AccessLevel: group.AccessLevel(model.AccessLevel),
		CreatedAt:   model.CreatedAt.UTC(),
	}
}
