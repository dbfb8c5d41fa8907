package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/user/dto"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type GetCurrentUserUseCase struct {
	userRepo   user.Repository
	emailRepo  user.EmailAddressRepository
	socialRepo user.SocialAccountRepository
	logger     logger.Interface
}

func NewGetCurrentUserUseCase(
	userRepo user.Repository,
	emailRepo user.EmailAddressRepository,
	socialRepo user.SocialAccountRepository,
	logger logger.Interface,
) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo:   userRepo,
		emailRepo:  emailRepo,
		socialRepo: socialRepo,
		logger:     logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return currentUser(ctx, u, uc.emailRepo, uc.socialRepo)
}

type UpdateProfileCommand struct {
	UserID    uint
	Username  *string
	FirstName *string
	LastName  *string
}

type UpdateProfileUseCase struct {
	userRepo   user.Repository
	emailRepo  user.EmailAddressRepository
	socialRepo user.SocialAccountRepository
	logger     logger.Interface
}

func NewUpdateProfileUseCase(
	userRepo user.Repository,
	emailRepo user.EmailAddressRepository,
	socialRepo user.SocialAccountRepository,
	logger logger.Interface,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo:   userRepo,
		emailRepo:  emailRepo,
		socialRepo: socialRepo,
		logger:     logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(cmd.Username, cmd.FirstName, cmd.LastName); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("profile updated", "user_id", cmd.UserID)
	return currentUser(ctx, u, uc.emailRepo, uc.socialRepo)
}

func currentUser(ctx context.Context, u *user.User, emailRepo user.EmailAddressRepository, socialRepo user.SocialAccountRepository) (*dto.UserDTO, error) {
	emails, err := emailRepo.ListByUser(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	socials, err := socialRepo.ListByUser(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	return dto.ToCurrentUserDTO(u, emails, socials), nil
}

type DeleteSocialConnectionCommand struct {
	UserID   uint
	Provider string
}

type DeleteSocialConnectionUseCase struct {
	socialRepo user.SocialAccountRepository
	logger     logger.Interface
}

func NewDeleteSocialConnectionUseCase(socialRepo user.SocialAccountRepository, logger logger.Interface) *DeleteSocialConnectionUseCase {
	return &DeleteSocialConnectionUseCase{
		socialRepo: socialRepo,
		logger:     logger,
	}
}

func (uc *DeleteSocialConnectionUseCase) Execute(ctx context.Context, cmd DeleteSocialConnectionCommand) error {
	provider, err := user.NewProvider(cmd.Provider)
	if err != nil {
		return errors.NewNotFoundError("social connection not found")
	}
	if err := uc.socialRepo.DeleteByUserProvider(ctx, cmd.UserID, provider); err != nil {
		return err
	}
	uc.logger.Infow("social connection removed", "user_id", cmd.UserID, "provider", cmd.Provider)
	return nil
}

type ListUsersQuery struct {
	query.BaseFilter
	Search string
	Role   *string
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	filter := user.UserFilter{BaseFilter: q.BaseFilter, Query: q.Search}
	if q.Role != nil {
		role := authorization.UserRole(*q.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role: " + *q.Role)
		}
		filter.Role = &role
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     page,
		PageSize: q.Limit(),
	}, nil
}

type ChangeUserRoleCommand struct {
	ActorID uint
	UserID  uint
	Role    string
}

type ChangeUserRoleUseCase struct {
	userRepo   user.Repository
	roleSyncer RoleSyncer
	logger     logger.Interface
}

func NewChangeUserRoleUseCase(userRepo user.Repository, roleSyncer RoleSyncer, logger logger.Interface) *ChangeUserRoleUseCase {
	return &ChangeUserRoleUseCase{
		userRepo:   userRepo,
		roleSyncer: roleSyncer,
		logger:     logger,
	}
}

func (uc *ChangeUserRoleUseCase) Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*dto.UserDTO, error) {
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role: " + cmd.Role)
	}
	if cmd.ActorID == cmd.UserID && role != authorization.RoleAdmin {
		return nil, errors.NewValidationError("admins cannot demote themselves")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	previous := u.Role()
	if err := u.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to change user role", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	if uc.roleSyncer != nil {
		if err := uc.roleSyncer.SetUserRole(u.ID(), role); err != nil {
			uc.logger.Errorw("failed to sync role policy", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("role saved but policy sync failed")
		}
	}

	uc.logger.Infow("user role changed",
		"user_id", u.ID(),
		"actor_id", cmd.ActorID,
		"from", previous,
		"to", role,
	)
	return dto.ToUserDTO(u), nil
}
