package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/event/dto"
)

type CreateEventExecutor interface {
	Execute(ctx context.Context, cmd CreateEventCommand) (*dto.EventDTO, error)
}

type UpdateEventExecutor interface {
	Execute(ctx context.Context, cmd UpdateEventCommand) (*dto.EventDTO, error)
}

type DeleteEventExecutor interface {
	Execute(ctx context.Context, eventID uint) error
}

type GetEventExecutor interface {
	Execute(ctx context.Context, eventID uint) (*dto.EventDTO, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error)
}

type CreateParticipationExecutor interface {
	Execute(ctx context.Context, cmd CreateParticipationCommand) (*dto.ParticipationDTO, error)
}

type UpdateParticipationExecutor interface {
	Execute(ctx context.Context, cmd UpdateParticipationCommand) (*dto.ParticipationDTO, error)
}

type DeleteParticipationExecutor interface {
	Execute(ctx context.Context, participationID uint) error
}

type GetParticipationExecutor interface {
	Execute(ctx context.Context, participationID uint) (*dto.ParticipationDTO, error)
}

type ListParticipationsExecutor interface {
	Execute(ctx context.Context, query ListParticipationsQuery) (*ListParticipationsResult, error)
}

type GroupParticipantsByContactExecutor interface {
	Execute(ctx context.Context, query GroupParticipantsByContactQuery) (*GroupParticipantsByContactResult, error)
}

type AddUserToEventExecutor interface {
	Execute(ctx context.Context, cmd AddUserToEventCommand) (*dto.UserInEventDTO, error)
}

type RemoveUserFromEventExecutor interface {
	Execute(ctx context.Context, id uint) error
}

type GetUserInEventExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.UserInEventDTO, error)
}

type ListUsersInEventExecutor interface {
	Execute(ctx context.Context, query ListUsersInEventQuery) (*ListUsersInEventResult, error)
}
