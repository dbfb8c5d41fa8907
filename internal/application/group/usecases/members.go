package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/group/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type AddMemberCommand struct {
	GroupID     uint
	ContactID   uint
	AccessLevel int
}

type AddMemberUseCase struct {
	groupRepo      group.Repository
	membershipRepo group.MembershipRepository
	contactRepo    contact.Repository
	logger         logger.Interface
}

func NewAddMemberUseCase(
	groupRepo group.Repository,
	membershipRepo group.MembershipRepository,
	contactRepo contact.Repository,
	logger logger.Interface,
) *AddMemberUseCase {
	return &AddMemberUseCase{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		contactRepo:    contactRepo,
		logger:         logger,
	}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, cmd AddMemberCommand) (*dto.MembershipDTO, error) {
	g, err := uc.groupRepo.GetByID(ctx, cmd.GroupID)
	if err != nil {
		return nil, err
	}
	c, err := uc.contactRepo.GetByID(ctx, cmd.ContactID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("contact does not exist")
		}
		return nil, err
	}

	m, err := group.NewMembership(cmd.GroupID, cmd.ContactID, group.AccessLevel(cmd.AccessLevel))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.membershipRepo.Create(ctx, m); err != nil {
		if errors.IsConflictError(err) {
			return nil, errors.NewConflictError("contact is already a member of this group")
		}
		uc.logger.Errorw("failed to add group member", "group_id", cmd.GroupID, "contact_id", cmd.ContactID, "error", err)
		return nil, err
	}

	m.GroupName = g.Name()
	m.ContactFullName = c.FullName()
	uc.logger.Infow("group member added", "group_id", cmd.GroupID, "contact_id", cmd.ContactID)
	return dto.ToMembershipDTO(m), nil
}

type RemoveMemberCommand struct {
	GroupID   uint
	ContactID uint
}

type RemoveMemberUseCase struct {
	membershipRepo group.MembershipRepository
	logger         logger.Interface
}

func NewRemoveMemberUseCase(membershipRepo group.MembershipRepository, logger logger.Interface) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func (uc *RemoveMemberUseCase) Execute(ctx context.Context, cmd RemoveMemberCommand) error {
	if err := uc.membershipRepo.DeleteByContact(ctx, cmd.GroupID, cmd.ContactID); err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to remove group member", "group_id", cmd.GroupID, "contact_id", cmd.ContactID, "error", err)
		}
		return err
	}
	uc.logger.Infow("group member removed", "group_id", cmd.GroupID, "contact_id", cmd.ContactID)
	return nil
}

type ListMembersQuery struct {
	query.PageFilter
	GroupID uint
}

type ListMembersResult struct {
	Members  []*dto.MembershipDTO
	Total    int64
	Page     int
	PageSize int
}

type ListMembersUseCase struct {
	groupRepo      group.Repository
	membershipRepo group.MembershipRepository
	logger         logger.Interface
}

func NewListMembersUseCase(groupRepo group.Repository, membershipRepo group.MembershipRepository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, q ListMembersQuery) (*ListMembersResult, error) {
	if _, err := uc.groupRepo.GetByID(ctx, q.GroupID); err != nil {
		return nil, err
	}

	members, total, err := uc.membershipRepo.ListByGroup(ctx, q.GroupID, q.PageFilter)
	if err != nil {
		uc.logger.Errorw("failed to list group members", "group_id", q.GroupID, "error", err)
		return nil, err
	}
	return &ListMembersResult{
		Members:  dto.ToMembershipDTOs(members),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}
