package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/group/dto"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type CreateGroupCommand struct {
	Name string
}

type CreateGroupUseCase struct {
	groupRepo group.Repository
	logger    logger.Interface
}

func NewCreateGroupUseCase(groupRepo group.Repository, logger logger.Interface) *CreateGroupUseCase {
	return &CreateGroupUseCase{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

func (uc *CreateGroupUseCase) Execute(ctx context.Context, cmd CreateGroupCommand) (*dto.GroupDTO, error) {
	g, err := group.NewGroup(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.groupRepo.Create(ctx, g); err != nil {
		uc.logger.Errorw("failed to create group", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("group created", "group_id", g.ID(), "name", g.Name())
	return dto.ToGroupDTO(g), nil
}

type RenameGroupCommand struct {
	GroupID uint
	Name    string
}

type RenameGroupUseCase struct {
	groupRepo group.Repository
	logger    logger.Interface
}

func NewRenameGroupUseCase(groupRepo group.Repository, logger logger.Interface) *RenameGroupUseCase {
	return &RenameGroupUseCase{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

func (uc *RenameGroupUseCase) Execute(ctx context.Context, cmd RenameGroupCommand) (*dto.GroupDTO, error) {
	g, err := uc.groupRepo.GetByID(ctx, cmd.GroupID)
	if err != nil {
		return nil, err
	}
	if err := g.Rename(cmd.Name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.groupRepo.Update(ctx, g); err != nil {
		uc.logger.Errorw("failed to rename group", "group_id", cmd.GroupID, "error", err)
		return nil, err
	}
	return dto.ToGroupDTO(g), nil
}

type DeleteGroupUseCase struct {
	groupRepo group.Repository
	logger    logger.Interface
}

func NewDeleteGroupUseCase(groupRepo group.Repository, logger logger.Interface) *DeleteGroupUseCase {
	return &DeleteGroupUseCase{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

func (uc *DeleteGroupUseCase) Execute(ctx context.Context, groupID uint) error {
	if err := uc.groupRepo.Delete(ctx, groupID); err != nil {
		uc.logger.Errorw("failed to delete group", "group_id", groupID, "error", err)
		return err
	}
	uc.logger.Infow("group deleted", "group_id", groupID)
	return nil
}

type GetGroupUseCase struct {
	groupRepo group.Repository
	logger    logger.Interface
}

func NewGetGroupUseCase(groupRepo group.Repository, logger logger.Interface) *GetGroupUseCase {
	return &GetGroupUseCase{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

func (uc *GetGroupUseCase) Execute(ctx context.Context, groupID uint) (*dto.GroupDTO, error) {
	g, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return dto.ToGroupDTO(g), nil
}

// ListGroupsQuery lists groups; WithCounts adds member_count to every row.
type ListGroupsQuery struct {
	query.BaseFilter
	Search     string
	WithCounts bool
}

type ListGroupsResult struct {
	Groups   []*dto.GroupDTO
	Total    int64
	Page     int
	PageSize int
}

type ListGroupsUseCase struct {
	groupRepo group.Repository
	logger    logger.Interface
}

func NewListGroupsUseCase(groupRepo group.Repository, logger logger.Interface) *ListGroupsUseCase {
	return &ListGroupsUseCase{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

func (uc *ListGroupsUseCase) Execute(ctx context.Context, q ListGroupsQuery) (*ListGroupsResult, error) {
	filter := group.GroupFilter{BaseFilter: q.BaseFilter, Query: q.Search}

	result := &ListGroupsResult{
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}
	if q.WithCounts {
		rows, total, err := uc.groupRepo.ListWithCounts(ctx, filter)
		if err != nil {
			uc.logger.Errorw("failed to list groups with counts", "error", err)
			return nil, err
		}
		result.Groups = dto.ToGroupWithCountDTOs(rows)
		result.Total = total
		return result, nil
	}

	groups, total, err := uc.groupRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list groups", "error", err)
		return nil, err
	}
	result.Groups = dto.ToGroupDTOs(groups)
	result.Total = total
	return result, nil
}

func pageNumber(p query.PageFilter) int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
