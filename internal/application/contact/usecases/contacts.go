package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/contact/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type CreateContactCommand struct {
	FullName  string
	DiscordID string
	Email     string
	Phone     string
	Note      string
}

type CreateContactUseCase struct {
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewCreateContactUseCase(contactRepo contact.Repository, logger logger.Interface) *CreateContactUseCase {
	return &CreateContactUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *CreateContactUseCase) Execute(ctx context.Context, cmd CreateContactCommand) (*dto.ContactDTO, error) {
	c, err := contact.NewContact(contact.Fields{
		FullName:  cmd.FullName,
		DiscordID: cmd.DiscordID,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Note:      cmd.Note,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.contactRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create contact", "error", err)
		return nil, err
	}

	uc.logger.Infow("contact created", "contact_id", c.ID())
	return dto.ToContactDTO(c), nil
}

type UpdateContactCommand struct {
	ContactID uint
	FullName  *string
	DiscordID *string
	Email     *string
	Phone     *string
	Note      *string
}

type UpdateContactUseCase struct {
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewUpdateContactUseCase(contactRepo contact.Repository, logger logger.Interface) *UpdateContactUseCase {
	return &UpdateContactUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *UpdateContactUseCase) Execute(ctx context.Context, cmd UpdateContactCommand) (*dto.ContactDTO, error) {
	c, err := uc.contactRepo.GetByID(ctx, cmd.ContactID)
	if err != nil {
		return nil, err
	}

	patch := contact.Patch{
		FullName:  cmd.FullName,
		DiscordID: cmd.DiscordID,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Note:      cmd.Note,
	}
	if err := c.Apply(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.contactRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update contact", "contact_id", cmd.ContactID, "error", err)
		return nil, err
	}
	return dto.ToContactDTO(c), nil
}

type DeleteContactUseCase struct {
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewDeleteContactUseCase(contactRepo contact.Repository, logger logger.Interface) *DeleteContactUseCase {
	return &DeleteContactUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *DeleteContactUseCase) Execute(ctx context.Context, contactID uint) error {
	if err := uc.contactRepo.Delete(ctx, contactID); err != nil {
		uc.logger.Errorw("failed to delete contact", "contact_id", contactID, "error", err)
		return err
	}
	uc.logger.Infow("contact deleted", "contact_id", contactID)
	return nil
}

type GetContactUseCase struct {
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewGetContactUseCase(contactRepo contact.Repository, logger logger.Interface) *GetContactUseCase {
	return &GetContactUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *GetContactUseCase) Execute(ctx context.Context, contactID uint) (*dto.ContactDTO, error) {
	c, err := uc.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return dto.ToContactDTO(c), nil
}

// ListContactsQuery filters the contact list. Tag is either a numeric tag ID
// or a tag name.
type ListContactsQuery struct {
	query.BaseFilter
	Search        string
	Tag           string
	GroupID       *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type ListContactsResult struct {
	Contacts []*dto.ContactDTO
	Total    int64
	Page     int
	PageSize int
}

type ListContactsUseCase struct {
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewListContactsUseCase(contactRepo contact.Repository, logger logger.Interface) *ListContactsUseCase {
	return &ListContactsUseCase{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context, q ListContactsQuery) (*ListContactsResult, error) {
	contacts, total, err := listContacts(ctx, uc.contactRepo, q)
	if err != nil {
		uc.logger.Errorw("failed to list contacts", "error", err)
		return nil, err
	}
	return &ListContactsResult{
		Contacts: dto.ToContactDTOs(contacts),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

type ListContactsWithRelationsResult struct {
	Contacts []*dto.ContactWithRelationsDTO
	Total    int64
	Page     int
	PageSize int
}

// ListContactsWithRelationsUseCase pages contacts and loads their tags,
// participations and group memberships with one query per relation.
type ListContactsWithRelationsUseCase struct {
	contactRepo       contact.Repository
	tagRepo           contact.TagRepository
	participationRepo event.ParticipationRepository
	membershipRepo    group.MembershipRepository
	logger            logger.Interface
}

func NewListContactsWithRelationsUseCase(
	contactRepo contact.Repository,
	tagRepo contact.TagRepository,
	participationRepo event.ParticipationRepository,
	membershipRepo group.MembershipRepository,
	logger logger.Interface,
) *ListContactsWithRelationsUseCase {
	return &ListContactsWithRelationsUseCase{
		contactRepo:       contactRepo,
		tagRepo:           tagRepo,
		participationRepo: participationRepo,
		membershipRepo:    membershipRepo,
		logger:            logger,
	}
}

func (uc *ListContactsWithRelationsUseCase) Execute(ctx context.Context, q ListContactsQuery) (*ListContactsWithRelationsResult, error) {
	contacts, total, err := listContacts(ctx, uc.contactRepo, q)
	if err != nil {
		uc.logger.Errorw("failed to list contacts", "error", err)
		return nil, err
	}

	ids := make([]uint, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID())
	}

	tags, err := uc.tagRepo.ListByContacts(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load contact tags", "error", err)
		return nil, err
	}
	parts, err := uc.participationRepo.ListByContacts(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load contact participations", "error", err)
		return nil, err
	}
	memberships, err := uc.membershipRepo.ListByContacts(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load contact groups", "error", err)
		return nil, err
	}

	out := make([]*dto.ContactWithRelationsDTO, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, dto.ToContactWithRelationsDTO(c, tags[c.ID()], parts[c.ID()], memberships[c.ID()]))
	}

	return &ListContactsWithRelationsResult{
		Contacts: out,
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

func listContacts(ctx context.Context, repo contact.Repository, q ListContactsQuery) ([]*contact.Contact, int64, error) {
	if q.CreatedAfter != nil && q.CreatedBefore != nil && q.CreatedBefore.Before(*q.CreatedAfter) {
		return nil, 0, errors.NewValidationError("created_before is before created_after")
	}

	filter := contact.ContactFilter{
		BaseFilter:    q.BaseFilter,
		Query:         q.Search,
		GroupID:       q.GroupID,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: q.CreatedBefore,
	}
	filter.TagID, filter.TagName = tagSelector(q.Tag)

	return repo.List(ctx, filter)
}
