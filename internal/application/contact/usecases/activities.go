package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/contact/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type AppendActivityCommand struct {
	ContactID    uint
	ActivityType string
	Data         map[string]interface{}
}

type AppendActivityUseCase struct {
	contactRepo  contact.Repository
	activityRepo contact.ActivityRepository
	logger       logger.Interface
}

func NewAppendActivityUseCase(contactRepo contact.Repository, activityRepo contact.ActivityRepository, logger logger.Interface) *AppendActivityUseCase {
	return &AppendActivityUseCase{
		contactRepo:  contactRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *AppendActivityUseCase) Execute(ctx context.Context, cmd AppendActivityCommand) (*dto.ActivityDTO, error) {
	if _, err := uc.contactRepo.GetByID(ctx, cmd.ContactID); err != nil {
		return nil, err
	}

	activityType := contact.ActivityMisc
	if cmd.ActivityType != "" {
		t, err := contact.NewActivityType(cmd.ActivityType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		activityType = t
	}

	a, err := contact.NewActivity(cmd.ContactID, activityType, cmd.Data)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.activityRepo.Append(ctx, a); err != nil {
		uc.logger.Errorw("failed to append contact activity", "contact_id", cmd.ContactID, "error", err)
		return nil, err
	}
	return dto.ToActivityDTO(a), nil
}

type ListActivitiesQuery struct {
	query.PageFilter
	ContactID    uint
	ActivityType string
}

type ListActivitiesResult struct {
	Activities []*dto.ActivityDTO
	Total      int64
	Page       int
	PageSize   int
}

type ListActivitiesUseCase struct {
	contactRepo  contact.Repository
	activityRepo contact.ActivityRepository
	logger       logger.Interface
}

func NewListActivitiesUseCase(contactRepo contact.Repository, activityRepo contact.ActivityRepository, logger logger.Interface) *ListActivitiesUseCase {
	return &ListActivitiesUseCase{
		contactRepo:  contactRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *ListActivitiesUseCase) Execute(ctx context.Context, q ListActivitiesQuery) (*ListActivitiesResult, error) {
	if _, err := uc.contactRepo.GetByID(ctx, q.ContactID); err != nil {
		return nil, err
	}

	filter := contact.ActivityFilter{PageFilter: q.PageFilter}
	if q.ActivityType != "" {
		t, err := contact.NewActivityType(q.ActivityType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Type = &t
	}

	list, total, err := uc.activityRepo.ListByContact(ctx, q.ContactID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list contact activities", "contact_id", q.ContactID, "error", err)
		return nil, err
	}
	return &ListActivitiesResult{
		Activities: dto.ToActivityDTOs(list),
		Total:      total,
		Page:       pageNumber(q.PageFilter),
		PageSize:   q.Limit(),
	}, nil
}
