package mappers

import (
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
)

// UserMapper handles the conversion between user domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(list []models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	if u == nil {
		return nil
	}
	return &models.UserModel{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		Role:        u.Role().String(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
		ModifiedAt:  u.ModifiedAt(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	return user.ReconstructUser(user.Params{
		ID:          model.ID,
		Username:    model.Username,
		Email:       model.Email,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Role:        authorization.UserRole(model.Role),
		LastLoginAt: model.LastLoginAt,
		CreatedAt:   model.CreatedAt.UTC(),
		ModifiedAt:  model.ModifiedAt.UTC(),
	})
}

func (m *UserMapperImpl) ToDomainList(list []models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(list))
	for i := range list {
		u, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func SocialAccountToModel(a *user.SocialAccount) *models.SocialAccountModel {
	return &models.SocialAccountModel{
		ID:          a.ID,
		UserID:      a.UserID,
		Provider:    a.Provider.String(),
		UID:         a.UID,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}

func SocialAccountToDomain(model *models.SocialAccountModel) *user.SocialAccount {
	return &user.SocialAccount{
		ID:          model.ID,
		UserID:      model.UserID,
		Provider:    user.Provider(model.Provider),
		UID:         model.UID,
		LastLoginAt: model.LastLoginAt,
		CreatedAt:   model.CreatedAt.UTC(),
	}
}

func EmailAddressToDomain(model *models.UserEmailAddressModel) *user.EmailAddress {
	return &user.EmailAddress{
		ID:       model.ID,
		UserID:   model.UserID,
		Email:    model.Email,
		Verified: model.Verified,
		Primary:  model.Primary,
	}
}
