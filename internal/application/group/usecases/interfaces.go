package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/group/dto"
)

type CreateGroupExecutor interface {
	Execute(ctx context.Context, cmd CreateGroupCommand) (*dto.GroupDTO, error)
}

type RenameGroupExecutor interface {
	Execute(ctx context.Context, cmd RenameGroupCommand) (*dto.GroupDTO, error)
}

type DeleteGroupExecutor interface {
	Execute(ctx context.Context, groupID uint) error
}

type GetGroupExecutor interface {
	Execute(ctx context.Context, groupID uint) (*dto.GroupDTO, error)
}

type ListGroupsExecutor interface {
	Execute(ctx context.Context, query ListGroupsQuery) (*ListGroupsResult, error)
}

type AddMemberExecutor interface {
	Execute(ctx context.Context, cmd AddMemberCommand) (*dto.MembershipDTO, error)
}

type RemoveMemberExecutor interface {
	Execute(ctx context.Context, cmd RemoveMemberCommand) error
}

type ListMembersExecutor interface {
	Execute(ctx context.Context, query ListMembersQuery) (*ListMembersResult, error)
}
