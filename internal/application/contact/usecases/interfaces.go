package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/contact/dto"
)

type CreateContactExecutor interface {
	Execute(ctx context.Context, cmd CreateContactCommand) (*dto.ContactDTO, error)
}

type UpdateContactExecutor interface {
	Execute(ctx context.Context, cmd UpdateContactCommand) (*dto.ContactDTO, error)
}

type DeleteContactExecutor interface {
	Execute(ctx context.Context, contactID uint) error
}

type GetContactExecutor interface {
	Execute(ctx context.Context, contactID uint) (*dto.ContactDTO, error)
}

type ListContactsExecutor interface {
	Execute(ctx context.Context, query ListContactsQuery) (*ListContactsResult, error)
}

type ListContactsWithRelationsExecutor interface {
	Execute(ctx context.Context, query ListContactsQuery) (*ListContactsWithRelationsResult, error)
}

type UpsertPersonWithTagsExecutor interface {
	Execute(ctx context.Context, cmd UpsertPersonWithTagsCommand) (*dto.ContactWithTagsDTO, error)
}

type AppendActivityExecutor interface {
	Execute(ctx context.Context, cmd AppendActivityCommand) (*dto.ActivityDTO, error)
}

type ListActivitiesExecutor interface {
	Execute(ctx context.Context, query ListActivitiesQuery) (*ListActivitiesResult, error)
}

type CreateTagExecutor interface {
	Execute(ctx context.Context, cmd CreateTagCommand) (*dto.TagDTO, error)
}

type UpdateTagExecutor interface {
	Execute(ctx context.Context, cmd UpdateTagCommand) (*dto.TagDTO, error)
}

type DeleteTagExecutor interface {
	Execute(ctx context.Context, tagID uint) error
}

type GetTagExecutor interface {
	Execute(ctx context.Context, tagID uint) (*dto.TagDTO, error)
}

type ListTagsExecutor interface {
	Execute(ctx context.Context, query ListTagsQuery) (*ListTagsResult, error)
}

type AssignTagExecutor interface {
	Execute(ctx context.Context, cmd AssignTagCommand) (*AssignTagResult, error)
}

type UnassignTagExecutor interface {
	Execute(ctx context.Context, assignmentID uint) error
}

type GetTagAssignmentExecutor interface {
	Execute(ctx context.Context, assignmentID uint) (*dto.TagAssignmentDTO, error)
}

type ListTagAssignmentsExecutor interface {
	Execute(ctx context.Context, query ListTagAssignmentsQuery) (*ListTagAssignmentsResult, error)
}
