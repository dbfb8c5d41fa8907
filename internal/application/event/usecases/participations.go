package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/event/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type CreateParticipationCommand struct {
	EventID   uint
	ContactID uint
	Status    string
	Notes     string
}

type CreateParticipationUseCase struct {
	participationRepo event.ParticipationRepository
	eventRepo         event.Repository
	contactRepo       contact.Repository
	logger            logger.Interface
}

func NewCreateParticipationUseCase(
	participationRepo event.ParticipationRepository,
	eventRepo event.Repository,
	contactRepo contact.Repository,
	logger logger.Interface,
) *CreateParticipationUseCase {
	return &CreateParticipationUseCase{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		contactRepo:       contactRepo,
		logger:            logger,
	}
}

func (uc *CreateParticipationUseCase) Execute(ctx context.Context, cmd CreateParticipationCommand) (*dto.ParticipationDTO, error) {
	p, err := event.NewParticipation(cmd.EventID, cmd.ContactID, event.CommitmentStatus(cmd.Status), cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	e, err := uc.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, referenceError(err, "event")
	}
	c, err := uc.contactRepo.GetByID(ctx, cmd.ContactID)
	if err != nil {
		return nil, referenceError(err, "contact")
	}

	if err := uc.participationRepo.Create(ctx, p); err != nil {
		if errors.IsConflictError(err) {
			return nil, errors.NewConflictError("contact already participates in this event")
		}
		uc.logger.Errorw("failed to create participation",
			"event_id", cmd.EventID,
			"contact_id", cmd.ContactID,
			"error", err,
		)
		return nil, err
	}

	p.EventName = e.Name()
	p.ContactFullName = c.FullName()
	uc.logger.Infow("participation created", "participation_id", p.ID, "event_id", p.EventID, "contact_id", p.ContactID)
	return dto.ToParticipationDTO(p), nil
}

type UpdateParticipationCommand struct {
	ParticipationID uint
	Status          *string
	Notes           *string
}

type UpdateParticipationUseCase struct {
	participationRepo event.ParticipationRepository
	logger            logger.Interface
}

func NewUpdateParticipationUseCase(participationRepo event.ParticipationRepository, logger logger.Interface) *UpdateParticipationUseCase {
	return &UpdateParticipationUseCase{
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (uc *UpdateParticipationUseCase) Execute(ctx context.Context, cmd UpdateParticipationCommand) (*dto.ParticipationDTO, error) {
	p, err := uc.participationRepo.GetByID(ctx, cmd.ParticipationID)
	if err != nil {
		return nil, err
	}

	var status *event.CommitmentStatus
	if cmd.Status != nil {
		s, err := event.NewCommitmentStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		status = &s
	}
	if err := p.Update(status, cmd.Notes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.participationRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update participation", "participation_id", cmd.ParticipationID, "error", err)
		return nil, err
	}
	return dto.ToParticipationDTO(p), nil
}

type DeleteParticipationUseCase struct {
	participationRepo event.ParticipationRepository
	logger            logger.Interface
}

func NewDeleteParticipationUseCase(participationRepo event.ParticipationRepository, logger logger.Interface) *DeleteParticipationUseCase {
	return &DeleteParticipationUseCase{
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (uc *DeleteParticipationUseCase) Execute(ctx context.Context, participationID uint) error {
	if err := uc.participationRepo.Delete(ctx, participationID); err != nil {
		uc.logger.Errorw("failed to delete participation", "participation_id", participationID, "error", err)
		return err
	}
	return nil
}

type GetParticipationUseCase struct {
	participationRepo event.ParticipationRepository
	logger            logger.Interface
}

func NewGetParticipationUseCase(participationRepo event.ParticipationRepository, logger logger.Interface) *GetParticipationUseCase {
	return &GetParticipationUseCase{
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (uc *GetParticipationUseCase) Execute(ctx context.Context, participationID uint) (*dto.ParticipationDTO, error) {
	p, err := uc.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return nil, err
	}
	return dto.ToParticipationDTO(p), nil
}

type ListParticipationsQuery struct {
	query.BaseFilter
	Search    string
	EventID   *uint
	ContactID *uint
	Status    *string
}

type ListParticipationsResult struct {
	Participations []*dto.ParticipationDTO
	Total          int64
	Page           int
	PageSize       int
}

type ListParticipationsUseCase struct {
	participationRepo event.ParticipationRepository
	logger            logger.Interface
}

func NewListParticipationsUseCase(participationRepo event.ParticipationRepository, logger logger.Interface) *ListParticipationsUseCase {
	return &ListParticipationsUseCase{
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (uc *ListParticipationsUseCase) Execute(ctx context.Context, q ListParticipationsQuery) (*ListParticipationsResult, error) {
	filter := event.ParticipationFilter{
		BaseFilter: q.BaseFilter,
		Query:      q.Search,
		EventID:    q.EventID,
		ContactID:  q.ContactID,
	}
	if q.Status != nil {
		s, err := event.NewCommitmentStatus(*q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}

	list, total, err := uc.participationRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list participations", "error", err)
		return nil, err
	}
	return &ListParticipationsResult{
		Participations: dto.ToParticipationDTOs(list),
		Total:          total,
		Page:           pageNumber(q.PageFilter),
		PageSize:       q.Limit(),
	}, nil
}

// GroupParticipantsByContactQuery counts, per contact, participations in
// Status (attended when empty).
type GroupParticipantsByContactQuery struct {
	query.PageFilter
	Status    string
	MinDate   *time.Time
	MaxDate   *time.Time
	MinEvents *int
	MaxEvents *int
}

type GroupParticipantsByContactResult struct {
	Rows     []dto.ContactEventCountDTO
	Total    int64
	Page     int
	PageSize int
}

type GroupParticipantsByContactUseCase struct {
	participationRepo event.ParticipationRepository
	logger            logger.Interface
}

func NewGroupParticipantsByContactUseCase(participationRepo event.ParticipationRepository, logger logger.Interface) *GroupParticipantsByContactUseCase {
	return &GroupParticipantsByContactUseCase{
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (uc *GroupParticipantsByContactUseCase) Execute(ctx context.Context, q GroupParticipantsByContactQuery) (*GroupParticipantsByContactResult, error) {
	status := event.CommitmentAttended
	if q.Status != "" {
		parsed, err := event.NewCommitmentStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
		status = parsed
	}
	base, err := shared.NewGroupByContactFilter(q.PageFilter, q.MinEvents, q.MaxEvents, q.MinDate, q.MaxDate)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	rows, total, err := uc.participationRepo.CountByContact(ctx, event.ContactParticipationCountFilter{
		GroupByContactFilter: base,
		Status:               status,
	})
	if err != nil {
		uc.logger.Errorw("failed to group participants by contact", "error", err)
		return nil, err
	}

	return &GroupParticipantsByContactResult{
		Rows:     dto.ToContactEventCountDTOs(rows),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

// referenceError turns a missing related row into a validation error on the
// referencing field.
func referenceError(err error, field string) error {
	if errors.IsNotFoundError(err) {
		return errors.NewValidationError(field + " does not exist")
	}
	return err
}
