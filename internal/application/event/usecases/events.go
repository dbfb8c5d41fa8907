package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/event/dto"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type CreateEventCommand struct {
	Name            string
	Description     string
	LocationName    string
	LocationAddress string
	StartsAt        *time.Time
	EndsAt          *time.Time
	Status          string
}

type CreateEventUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewCreateEventUseCase(eventRepo event.Repository, logger logger.Interface) *CreateEventUseCase {
	return &CreateEventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *CreateEventUseCase) Execute(ctx context.Context, cmd CreateEventCommand) (*dto.EventDTO, error) {
	e, err := event.NewEvent(event.Fields{
		Name:            cmd.Name,
		Description:     cmd.Description,
		LocationName:    cmd.LocationName,
		LocationAddress: cmd.LocationAddress,
		StartsAt:        cmd.StartsAt,
		EndsAt:          cmd.EndsAt,
		Status:          event.Status(cmd.Status),
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.eventRepo.Create(ctx, e); err != nil {
		uc.logger.Errorw("failed to create event", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("event created", "event_id", e.ID(), "name", e.Name())
	return dto.ToEventDTO(e), nil
}

type UpdateEventCommand struct {
	EventID         uint
	Name            *string
	Description     *string
	LocationName    *string
	LocationAddress *string
	StartsAt        *time.Time
	ClearStartsAt   bool
	EndsAt          *time.Time
	ClearEndsAt     bool
	Status          *string
}

type UpdateEventUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewUpdateEventUseCase(eventRepo event.Repository, logger logger.Interface) *UpdateEventUseCase {
	return &UpdateEventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *UpdateEventUseCase) Execute(ctx context.Context, cmd UpdateEventCommand) (*dto.EventDTO, error) {
	e, err := uc.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}

	patch := event.Patch{
		Name:            cmd.Name,
		Description:     cmd.Description,
		LocationName:    cmd.LocationName,
		LocationAddress: cmd.LocationAddress,
		StartsAt:        cmd.StartsAt,
		ClearStartsAt:   cmd.ClearStartsAt,
		EndsAt:          cmd.EndsAt,
		ClearEndsAt:     cmd.ClearEndsAt,
	}
	if cmd.Status != nil {
		s, err := event.NewStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		patch.Status = &s
	}
	if err := e.Apply(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.eventRepo.Update(ctx, e); err != nil {
		uc.logger.Errorw("failed to update event", "event_id", cmd.EventID, "error", err)
		return nil, err
	}
	return dto.ToEventDTO(e), nil
}

type DeleteEventUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewDeleteEventUseCase(eventRepo event.Repository, logger logger.Interface) *DeleteEventUseCase {
	return &DeleteEventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *DeleteEventUseCase) Execute(ctx context.Context, eventID uint) error {
	if err := uc.eventRepo.Delete(ctx, eventID); err != nil {
		uc.logger.Errorw("failed to delete event", "event_id", eventID, "error", err)
		return err
	}
	uc.logger.Infow("event deleted", "event_id", eventID)
	return nil
}

type GetEventUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewGetEventUseCase(eventRepo event.Repository, logger logger.Interface) *GetEventUseCase {
	return &GetEventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *GetEventUseCase) Execute(ctx context.Context, eventID uint) (*dto.EventDTO, error) {
	e, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return dto.ToEventDTO(e), nil
}

type ListEventsQuery struct {
	query.BaseFilter
	Search       string
	Status       *string
	StartsAfter  *time.Time
	StartsBefore *time.Time
}

type ListEventsResult struct {
	Events   []*dto.EventDTO
	Total    int64
	Page     int
	PageSize int
}

type ListEventsUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewListEventsUseCase(eventRepo event.Repository, logger logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, q ListEventsQuery) (*ListEventsResult, error) {
	filter := event.EventFilter{
		BaseFilter:   q.BaseFilter,
		Query:        q.Search,
		StartsAfter:  q.StartsAfter,
		StartsBefore: q.StartsBefore,
	}
	if q.Status != nil {
		s, err := event.NewStatus(*q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}

	events, total, err := uc.eventRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list events", "error", err)
		return nil, err
	}
	return &ListEventsResult{
		Events:   dto.ToEventDTOs(events),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

func pageNumber(p query.PageFilter) int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
