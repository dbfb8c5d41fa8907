package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/contact/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type CreateTagCommand struct {
	Name  string
	Color string
}

type CreateTagUseCase struct {
	tagRepo contact.TagRepository
	logger  logger.Interface
}

func NewCreateTagUseCase(tagRepo contact.TagRepository, logger logger.Interface) *CreateTagUseCase {
	return &CreateTagUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (uc *CreateTagUseCase) Execute(ctx context.Context, cmd CreateTagCommand) (*dto.TagDTO, error) {
	t, err := contact.NewTag(cmd.Name, cmd.Color)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tagRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to create tag", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("tag created", "tag_id", t.ID(), "name", t.Name())
	return dto.ToTagDTO(t), nil
}

type UpdateTagCommand struct {
	TagID uint
	Name  *string
	Color *string
}

type UpdateTagUseCase struct {
	tagRepo contact.TagRepository
	logger  logger.Interface
}

func NewUpdateTagUseCase(tagRepo contact.TagRepository, logger logger.Interface) *UpdateTagUseCase {
	return &UpdateTagUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (uc *UpdateTagUseCase) Execute(ctx context.Context, cmd UpdateTagCommand) (*dto.TagDTO, error) {
	t, err := uc.tagRepo.GetByID(ctx, cmd.TagID)
	if err != nil {
		return nil, err
	}
	if err := t.Update(cmd.Name, cmd.Color); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tagRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tag", "tag_id", cmd.TagID, "error", err)
		return nil, err
	}
	return dto.ToTagDTO(t), nil
}

type DeleteTagUseCase struct {
	tagRepo contact.TagRepository
	logger  logger.Interface
}

func NewDeleteTagUseCase(tagRepo contact.TagRepository, logger logger.Interface) *DeleteTagUseCase {
	return &DeleteTagUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (uc *DeleteTagUseCase) Execute(ctx context.Context, tagID uint) error {
	if err := uc.tagRepo.Delete(ctx, tagID); err != nil {
		uc.logger.Errorw("failed to delete tag", "tag_id", tagID, "error", err)
		return err
	}
	return nil
}

type GetTagUseCase struct {
	tagRepo contact.TagRepository
	logger  logger.Interface
}

func NewGetTagUseCase(tagRepo contact.TagRepository, logger logger.Interface) *GetTagUseCase {
	return &GetTagUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (uc *GetTagUseCase) Execute(ctx context.Context, tagID uint) (*dto.TagDTO, error) {
	t, err := uc.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return dto.ToTagDTO(t), nil
}

type ListTagsQuery struct {
	query.BaseFilter
	Search string
}

type ListTagsResult struct {
	Tags     []dto.TagDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTagsUseCase struct {
	tagRepo contact.TagRepository
	logger  logger.Interface
}

func NewListTagsUseCase(tagRepo contact.TagRepository, logger logger.Interface) *ListTagsUseCase {
	return &ListTagsUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

func (uc *ListTagsUseCase) Execute(ctx context.Context, q ListTagsQuery) (*ListTagsResult, error) {
	tags, total, err := uc.tagRepo.List(ctx, contact.TagFilter{BaseFilter: q.BaseFilter, Query: q.Search})
	if err != nil {
		uc.logger.Errorw("failed to list tags", "error", err)
		return nil, err
	}
	return &ListTagsResult{
		Tags:     dto.ToTagDTOs(tags),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

// AssignTagCommand links a tag to a contact. The tag is picked by TagID when
// set, otherwise by TagName.
type AssignTagCommand struct {
	ContactID uint
	TagID     *uint
	TagName   string
}

type AssignTagResult struct {
	Assignment *dto.TagAssignmentDTO
	Created    bool
}

type AssignTagUseCase struct {
	contactRepo    contact.Repository
	tagRepo        contact.TagRepository
	assignmentRepo contact.TagAssignmentRepository
	logger         logger.Interface
}

func NewAssignTagUseCase(
	contactRepo contact.Repository,
	tagRepo contact.TagRepository,
	assignmentRepo contact.TagAssignmentRepository,
	logger logger.Interface,
) *AssignTagUseCase {
	return &AssignTagUseCase{
		contactRepo:    contactRepo,
		tagRepo:        tagRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Execute is idempotent: assigning an existing pair returns the stored row
// with Created false.
func (uc *AssignTagUseCase) Execute(ctx context.Context, cmd AssignTagCommand) (*AssignTagResult, error) {
	if cmd.ContactID == 0 {
		return nil, errors.NewValidationError("contact is required")
	}
	if _, err := uc.contactRepo.GetByID(ctx, cmd.ContactID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("contact does not exist")
		}
		return nil, err
	}

	var (
		t   *contact.Tag
		err error
	)
	switch {
	case cmd.TagID != nil:
		t, err = uc.tagRepo.GetByID(ctx, *cmd.TagID)
	case cmd.TagName != "":
		t, err = uc.tagRepo.GetByName(ctx, cmd.TagName)
	default:
		return nil, errors.NewValidationError("tag is required")
	}
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("tag does not exist")
		}
		return nil, err
	}

	a, created, err := uc.assignmentRepo.Assign(ctx, cmd.ContactID, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to assign tag", "contact_id", cmd.ContactID, "tag_id", t.ID(), "error", err)
		return nil, err
	}
	if a.TagName == "" {
		a.TagName = t.Name()
		a.TagColor = t.Color()
	}

	if created {
		uc.logger.Infow("tag assigned", "contact_id", cmd.ContactID, "tag_id", t.ID())
	}
	return &AssignTagResult{Assignment: dto.ToTagAssignmentDTO(a), Created: created}, nil
}

type UnassignTagUseCase struct {
	assignmentRepo contact.TagAssignmentRepository
	logger         logger.Interface
}

func NewUnassignTagUseCase(assignmentRepo contact.TagAssignmentRepository, logger logger.Interface) *UnassignTagUseCase {
	return &UnassignTagUseCase{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *UnassignTagUseCase) Execute(ctx context.Context, assignmentID uint) error {
	if err := uc.assignmentRepo.Delete(ctx, assignmentID); err != nil {
		uc.logger.Errorw("failed to delete tag assignment", "assignment_id", assignmentID, "error", err)
		return err
	}
	return nil
}

type GetTagAssignmentUseCase struct {
	assignmentRepo contact.TagAssignmentRepository
	logger         logger.Interface
}

func NewGetTagAssignmentUseCase(assignmentRepo contact.TagAssignmentRepository, logger logger.Interface) *GetTagAssignmentUseCase {
	return &GetTagAssignmentUseCase{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *GetTagAssignmentUseCase) Execute(ctx context.Context, assignmentID uint) (*dto.TagAssignmentDTO, error) {
	a, err := uc.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return dto.ToTagAssignmentDTO(a), nil
}

type ListTagAssignmentsQuery struct {
	query.PageFilter
	ContactID *uint
	Tag       string
}

type ListTagAssignmentsResult struct {
	Assignments []*dto.TagAssignmentDTO
	Total       int64
	Page        int
	PageSize    int
}

type ListTagAssignmentsUseCase struct {
	assignmentRepo contact.TagAssignmentRepository
	logger         logger.Interface
}

func NewListTagAssignmentsUseCase(assignmentRepo contact.TagAssignmentRepository, logger logger.Interface) *ListTagAssignmentsUseCase {
	return &ListTagAssignmentsUseCase{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *ListTagAssignmentsUseCase) Execute(ctx context.Context, q ListTagAssignmentsQuery) (*ListTagAssignmentsResult, error) {
	filter := contact.TagAssignmentFilter{PageFilter: q.PageFilter, ContactID: q.ContactID}
	filter.TagID, filter.TagName = tagSelector(q.Tag)

	list, total, err := uc.assignmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tag assignments", "error", err)
		return nil, err
	}
	return &ListTagAssignmentsResult{
		Assignments: dto.ToTagAssignmentDTOs(list),
		Total:       total,
		Page:        pageNumber(q.PageFilter),
		PageSize:    q.Limit(),
	}, nil
}
