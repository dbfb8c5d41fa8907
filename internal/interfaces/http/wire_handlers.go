package http

import (
	"github.com/dggcrm/dggcrm/internal/infrastructure/config"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/handlers"
	contactHandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/contact"
	eventHandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/event"
	groupHandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/group"
	ticketHandlers "github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/ticket"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	userHandler    *handlers.UserHandler

	// Contact
	contactHandler *contactHandlers.ContactHandler
	tagHandler     *contactHandlers.TagHandler

	// Event
	eventHandler         *eventHandlers.EventHandler
	participationHandler *eventHandlers.ParticipationHandler
	userInEventHandler   *eventHandlers.UserInEventHandler

	// Group
	groupHandler *groupHandlers.GroupHandler

	// Ticket
	ticketHandler *ticketHandlers.TicketHandler
	askHandler    *ticketHandlers.AskHandler
}

func newHandlers(u *allUseCases, cfg *config.Config, log logger.Interface) *allHandlers {
	return &allHandlers{
		authHandler: handlers.NewAuthHandler(
			u.initiateOAuthUC, u.handleOAuthUC, u.refreshTokenUC, u.logoutUC, log,
			cfg.Auth.Cookie, cfg.Auth.JWT, cfg.Server.FrontendURL, cfg.Server.LoginURL(),
		),
		profileHandler: handlers.NewProfileHandler(u.getCurrentUserUC, u.updateProfileUC, u.deleteConnectionUC, log),
		userHandler:    handlers.NewUserHandler(u.listUsersUC, u.changeUserRoleUC, log),

		contactHandler: contactHandlers.NewContactHandler(
			u.createContactUC, u.updateContactUC, u.deleteContactUC, u.getContactUC, u.listContactsUC,
			u.listWithRelationsUC, u.upsertPersonUC, u.appendActivityUC, u.listActivitiesUC, log,
		),
		tagHandler: contactHandlers.NewTagHandler(
			u.createTagUC, u.updateTagUC, u.deleteTagUC, u.getTagUC, u.listTagsUC,
			u.assignTagUC, u.unassignTagUC, u.getAssignmentUC, u.listAssignmentsUC, log,
		),

		eventHandler: eventHandlers.NewEventHandler(
			u.createEventUC, u.updateEventUC, u.deleteEventUC, u.getEventUC, u.listEventsUC, log,
		),
		participationHandler: eventHandlers.NewParticipationHandler(
			u.createParticipationUC, u.updateParticipationUC, u.deleteParticipationUC,
			u.getParticipationUC, u.listParticipationsUC, u.groupParticipantsUC, log,
		),
		userInEventHandler: eventHandlers.NewUserInEventHandler(
			u.addUserToEventUC, u.removeUserFromEventUC, u.getUserInEventUC, u.listUsersInEventUC, log,
		),

		groupHandler: groupHandlers.NewGroupHandler(
			u.createGroupUC, u.renameGroupUC, u.deleteGroupUC, u.getGroupUC, u.listGroupsUC,
			u.addMemberUC, u.removeMemberUC, u.listMembersUC, log,
		),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC, u.updateTicketUC, u.deleteTicketUC, u.getTicketUC, u.listTicketsUC,
			u.claimTicketUC, u.unclaimTicketUC, u.assignTicketUC,
			u.addCommentUC, u.listCommentsUC, u.listAuditLogsUC, u.getTimelineUC, u.groupTicketsUC, log,
		),
		askHandler: ticketHandlers.NewAskHandler(
			u.createAskUC, u.listAsksUC, u.updateAskUC, u.updateAskByKeysUC, u.acceptanceRateUC, log,
		),
	}
}
