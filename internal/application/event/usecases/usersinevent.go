package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/event/dto"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type AddUserToEventCommand struct {
	UserID  uint
	EventID uint
}

type AddUserToEventUseCase struct {
	userInEventRepo event.UserInEventRepository
	eventRepo       event.Repository
	userRepo        user.Repository
	logger          logger.Interface
}

func NewAddUserToEventUseCase(
	userInEventRepo event.UserInEventRepository,
	eventRepo event.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *AddUserToEventUseCase {
	return &AddUserToEventUseCase{
		userInEventRepo: userInEventRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

func (uc *AddUserToEventUseCase) Execute(ctx context.Context, cmd AddUserToEventCommand) (*dto.UserInEventDTO, error) {
	link, err := event.NewUserInEvent(cmd.UserID, cmd.EventID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	e, err := uc.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, referenceError(err, "event")
	}
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, referenceError(err, "user")
	}

	if err := uc.userInEventRepo.Create(ctx, link); err != nil {
		uc.logger.Errorw("failed to add user to event", "user_id", cmd.UserID, "event_id", cmd.EventID, "error", err)
		return nil, err
	}

	link.EventName = e.Name()
	link.UserUsername = u.Username()
	return dto.ToUserInEventDTO(link), nil
}

type RemoveUserFromEventUseCase struct {
	userInEventRepo event.UserInEventRepository
	logger          logger.Interface
}

func NewRemoveUserFromEventUseCase(userInEventRepo event.UserInEventRepository, logger logger.Interface) *RemoveUserFromEventUseCase {
	return &RemoveUserFromEventUseCase{
		userInEventRepo: userInEventRepo,
		logger:          logger,
	}
}

func (uc *RemoveUserFromEventUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.userInEventRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to remove user from event", "id", id, "error", err)
		return err
	}
	return nil
}

type GetUserInEventUseCase struct {
	userInEventRepo event.UserInEventRepository
	logger          logger.Interface
}

func NewGetUserInEventUseCase(userInEventRepo event.UserInEventRepository, logger logger.Interface) *GetUserInEventUseCase {
	return &GetUserInEventUseCase{
		userInEventRepo: userInEventRepo,
		logger:          logger,
	}
}

func (uc *GetUserInEventUseCase) Execute(ctx context.Context, id uint) (*dto.UserInEventDTO, error) {
	link, err := uc.userInEventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserInEventDTO(link), nil
}

type ListUsersInEventQuery struct {
	query.BaseFilter
	EventID *uint
	UserID  *uint
}

type ListUsersInEventResult struct {
	Links    []*dto.UserInEventDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersInEventUseCase struct {
	userInEventRepo event.UserInEventRepository
	logger          logger.Interface
}

func NewListUsersInEventUseCase(userInEventRepo event.UserInEventRepository, logger logger.Interface) *ListUsersInEventUseCase {
	return &ListUsersInEventUseCase{
		userInEventRepo: userInEventRepo,
		logger:          logger,
	}
}

func (uc *ListUsersInEventUseCase) Execute(ctx context.Context, q ListUsersInEventQuery) (*ListUsersInEventResult, error) {
	list, total, err := uc.userInEventRepo.List(ctx, event.UserInEventFilter{
		BaseFilter: q.BaseFilter,
		EventID:    q.EventID,
		UserID:     q.UserID,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users in event", "error", err)
		return nil, err
	}
	return &ListUsersInEventResult{
		Links:    dto.ToUserInEventDTOs(list),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}
