package http

import (
	contactUsecases "github.com/dggcrm/dggcrm/internal/application/contact/usecases"
	eventUsecases "github.com/dggcrm/dggcrm/internal/application/event/usecases"
	groupUsecases "github.com/dggcrm/dggcrm/internal/application/group/usecases"
	ticketUsecases "github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	initiateOAuthUC    *usecases.InitiateOAuthUseCase
	handleOAuthUC      *usecases.HandleOAuthCallbackUseCase
	refreshTokenUC     *usecases.RefreshTokenUseCase
	logoutUC           *usecases.LogoutUseCase
	getCurrentUserUC   *usecases.GetCurrentUserUseCase
	updateProfileUC    *usecases.UpdateProfileUseCase
	deleteConnectionUC *usecases.DeleteSocialConnectionUseCase
	listUsersUC        *usecases.ListUsersUseCase
	changeUserRoleUC   *usecases.ChangeUserRoleUseCase

	// Contact
	createContactUC     *contactUsecases.CreateContactUseCase
	updateContactUC     *contactUsecases.UpdateContactUseCase
	deleteContactUC     *contactUsecases.DeleteContactUseCase
	getContactUC        *contactUsecases.GetContactUseCase
	listContactsUC      *contactUsecases.ListContactsUseCase
	listWithRelationsUC *contactUsecases.ListContactsWithRelationsUseCase
	upsertPersonUC      *contactUsecases.UpsertPersonWithTagsUseCase
	appendActivityUC    *contactUsecases.AppendActivityUseCase
	listActivitiesUC    *contactUsecases.ListActivitiesUseCase

	// Tag
	createTagUC       *contactUsecases.CreateTagUseCase
	updateTagUC       *contactUsecases.UpdateTagUseCase
	deleteTagUC       *contactUsecases.DeleteTagUseCase
	getTagUC          *contactUsecases.GetTagUseCase
	listTagsUC        *contactUsecases.ListTagsUseCase
	assignTagUC       *contactUsecases.AssignTagUseCase
	unassignTagUC     *contactUsecases.UnassignTagUseCase
	getAssignmentUC   *contactUsecases.GetTagAssignmentUseCase
	listAssignmentsUC *contactUsecases.ListTagAssignmentsUseCase

	// Event
	createEventUC *eventUsecases.CreateEventUseCase
	updateEventUC *eventUsecases.UpdateEventUseCase
	deleteEventUC *eventUsecases.DeleteEventUseCase
	getEventUC    *eventUsecases.GetEventUseCase
	listEventsUC  *eventUsecases.ListEventsUseCase

	// Participation
	createParticipationUC *eventUsecases.CreateParticipationUseCase
	updateParticipationUC *eventUsecases.UpdateParticipationUseCase
	deleteParticipationUC *eventUsecases.DeleteParticipationUseCase
	getParticipationUC    *eventUsecases.GetParticipationUseCase
	listParticipationsUC  *eventUsecases.ListParticipationsUseCase
	groupParticipantsUC   *eventUsecases.GroupParticipantsByContactUseCase
	addUserToEventUC      *eventUsecases.AddUserToEventUseCase
	removeUserFromEventUC *eventUsecases.RemoveUserFromEventUseCase
	getUserInEventUC      *eventUsecases.GetUserInEventUseCase
	listUsersInEventUC    *eventUsecases.ListUsersInEventUseCase

	// Group
	createGroupUC  *groupUsecases.CreateGroupUseCase
	renameGroupUC  *groupUsecases.RenameGroupUseCase
	deleteGroupUC  *groupUsecases.DeleteGroupUseCase
	getGroupUC     *groupUsecases.GetGroupUseCase
	listGroupsUC   *groupUsecases.ListGroupsUseCase
	addMemberUC    *groupUsecases.AddMemberUseCase
	removeMemberUC *groupUsecases.RemoveMemberUseCase
	listMembersUC  *groupUsecases.ListMembersUseCase

	// Ticket
	createTicketUC    *ticketUsecases.CreateTicketUseCase
	updateTicketUC    *ticketUsecases.UpdateTicketUseCase
	deleteTicketUC    *ticketUsecases.DeleteTicketUseCase
	getTicketUC       *ticketUsecases.GetTicketUseCase
	listTicketsUC     *ticketUsecases.ListTicketsUseCase
	claimTicketUC     *ticketUsecases.ClaimTicketUseCase
	unclaimTicketUC   *ticketUsecases.UnclaimTicketUseCase
	assignTicketUC    *ticketUsecases.AssignTicketUseCase
	addCommentUC      *ticketUsecases.AddCommentUseCase
	listCommentsUC    *ticketUsecases.ListCommentsUseCase
	listAuditLogsUC   *ticketUsecases.ListAuditLogsUseCase
	getTimelineUC     *ticketUsecases.GetTimelineUseCase
	groupTicketsUC    *ticketUsecases.GroupTicketsByContactUseCase
	createAskUC       *ticketUsecases.CreateAskUseCase
	listAsksUC        *ticketUsecases.ListAsksUseCase
	updateAskUC       *ticketUsecases.UpdateAskUseCase
	updateAskByKeysUC *ticketUsecases.UpdateAskByKeysUseCase
	acceptanceRateUC  *ticketUsecases.GetAcceptanceRateUseCase
}

func newUseCases(r *repositories, s *services, log logger.Interface) *allUseCases {
	return &allUseCases{
		initiateOAuthUC:    usecases.NewInitiateOAuthUseCase(s.oauthManager, s.stateStore, log),
		handleOAuthUC:      usecases.NewHandleOAuthCallbackUseCase(r.userRepo, r.socialRepo, s.oauthManager, s.stateStore, s.jwtService, r.txMgr, log),
		refreshTokenUC:     usecases.NewRefreshTokenUseCase(r.userRepo, s.jwtService, log),
		logoutUC:           usecases.NewLogoutUseCase(log),
		getCurrentUserUC:   usecases.NewGetCurrentUserUseCase(r.userRepo, r.emailRepo, r.socialRepo, log),
		updateProfileUC:    usecases.NewUpdateProfileUseCase(r.userRepo, r.emailRepo, r.socialRepo, log),
		deleteConnectionUC: usecases.NewDeleteSocialConnectionUseCase(r.socialRepo, log),
		listUsersUC:        usecases.NewListUsersUseCase(r.userRepo, log),
		changeUserRoleUC:   usecases.NewChangeUserRoleUseCase(r.userRepo, s.enforcer, log),

		createContactUC:     contactUsecases.NewCreateContactUseCase(r.contactRepo, log),
		updateContactUC:     contactUsecases.NewUpdateContactUseCase(r.contactRepo, log),
		deleteContactUC:     contactUsecases.NewDeleteContactUseCase(r.contactRepo, log),
		getContactUC:        contactUsecases.NewGetContactUseCase(r.contactRepo, log),
		listContactsUC:      contactUsecases.NewListContactsUseCase(r.contactRepo, log),
		listWithRelationsUC: contactUsecases.NewListContactsWithRelationsUseCase(r.contactRepo, r.tagRepo, r.participationRepo, r.membershipRepo, log),
		upsertPersonUC:      contactUsecases.NewUpsertPersonWithTagsUseCase(r.contactRepo, r.tagRepo, r.assignmentRepo, r.txMgr, log),
		appendActivityUC:    contactUsecases.NewAppendActivityUseCase(r.contactRepo, r.activityRepo, log),
		listActivitiesUC:    contactUsecases.NewListActivitiesUseCase(r.contactRepo, r.activityRepo, log),

		createTagUC:       contactUsecases.NewCreateTagUseCase(r.tagRepo, log),
		updateTagUC:       contactUsecases.NewUpdateTagUseCase(r.tagRepo, log),
		deleteTagUC:       contactUsecases.NewDeleteTagUseCase(r.tagRepo, log),
		getTagUC:          contactUsecases.NewGetTagUseCase(r.tagRepo, log),
		listTagsUC:        contactUsecases.NewListTagsUseCase(r.tagRepo, log),
		assignTagUC:       contactUsecases.NewAssignTagUseCase(r.contactRepo, r.tagRepo, r.assignmentRepo, log),
		unassignTagUC:     contactUsecases.NewUnassignTagUseCase(r.assignmentRepo, log),
		getAssignmentUC:   contactUsecases.NewGetTagAssignmentUseCase(r.assignmentRepo, log),
		listAssignmentsUC: contactUsecases.NewListTagAssignmentsUseCase(r.assignmentRepo, log),

		createEventUC: eventUsecases.NewCreateEventUseCase(r.eventRepo, log),
		updateEventUC: eventUsecases.NewUpdateEventUseCase(r.eventRepo, log),
		deleteEventUC: eventUsecases.NewDeleteEventUseCase(r.eventRepo, log),
		getEventUC:    eventUsecases.NewGetEventUseCase(r.eventRepo, log),
		listEventsUC:  eventUsecases.NewListEventsUseCase(r.eventRepo, log),

		createParticipationUC: eventUsecases.NewCreateParticipationUseCase(r.participationRepo, r.eventRepo, r.contactRepo, log),
		updateParticipationUC: eventUsecases.NewUpdateParticipationUseCase(r.participationRepo, log),
		deleteParticipationUC: eventUsecases.NewDeleteParticipationUseCase(r.participationRepo, log),
		getParticipationUC:    eventUsecases.NewGetParticipationUseCase(r.participationRepo, log),
		listParticipationsUC:  eventUsecases.NewListParticipationsUseCase(r.participationRepo, log),
		groupParticipantsUC:   eventUsecases.NewGroupParticipantsByContactUseCase(r.participationRepo, log),
		addUserToEventUC:      eventUsecases.NewAddUserToEventUseCase(r.userInEventRepo, r.eventRepo, r.userRepo, log),
		removeUserFromEventUC: eventUsecases.NewRemoveUserFromEventUseCase(r.userInEventRepo, log),
		getUserInEventUC:      eventUsecases.NewGetUserInEventUseCase(r.userInEventRepo, log),
		listUsersInEventUC:    eventUsecases.NewListUsersInEventUseCase(r.userInEventRepo, log),

		createGroupUC:  groupUsecases.NewCreateGroupUseCase(r.groupRepo, log),
		renameGroupUC:  groupUsecases.NewRenameGroupUseCase(r.groupRepo, log),
		deleteGroupUC:  groupUsecases.NewDeleteGroupUseCase(r.groupRepo, log),
		getGroupUC:     groupUsecases.NewGetGroupUseCase(r.groupRepo, log),
		listGroupsUC:   groupUsecases.NewListGroupsUseCase(r.groupRepo, log),
		addMemberUC:    groupUsecases.NewAddMemberUseCase(r.groupRepo, r.membershipRepo, r.contactRepo, log),
		removeMemberUC: groupUsecases.NewRemoveMemberUseCase(r.membershipRepo, log),
		listMembersUC:  groupUsecases.NewListMembersUseCase(r.groupRepo, r.membershipRepo, log),

		createTicketUC:    ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, r.auditRepo, r.eventRepo, r.contactRepo, r.userRepo, r.txMgr, log),
		updateTicketUC:    ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, r.auditRepo, r.eventRepo, r.contactRepo, r.userRepo, r.txMgr, log),
		deleteTicketUC:    ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, log),
		getTicketUC:       ticketUsecases.NewGetTicketUseCase(r.ticketRepo, log),
		listTicketsUC:     ticketUsecases.NewListTicketsUseCase(r.ticketRepo, log),
		claimTicketUC:     ticketUsecases.NewClaimTicketUseCase(r.ticketRepo, r.auditRepo, r.txMgr, log),
		unclaimTicketUC:   ticketUsecases.NewUnclaimTicketUseCase(r.ticketRepo, r.auditRepo, r.txMgr, log),
		assignTicketUC:    ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.userRepo, r.auditRepo, r.txMgr, s.notifier, log),
		addCommentUC:      ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, s.markdown, log),
		listCommentsUC:    ticketUsecases.NewListCommentsUseCase(r.ticketRepo, r.commentRepo, s.markdown, log),
		listAuditLogsUC:   ticketUsecases.NewListAuditLogsUseCase(r.ticketRepo, r.auditRepo, log),
		getTimelineUC:     ticketUsecases.NewGetTimelineUseCase(r.ticketRepo, r.auditRepo, r.commentRepo, s.markdown, log),
		groupTicketsUC:    ticketUsecases.NewGroupTicketsByContactUseCase(r.ticketRepo, log),
		createAskUC:       ticketUsecases.NewCreateAskUseCase(r.ticketRepo, r.askRepo, r.contactRepo, log),
		listAsksUC:        ticketUsecases.NewListAsksUseCase(r.ticketRepo, r.askRepo, log),
		updateAskUC:       ticketUsecases.NewUpdateAskUseCase(r.askRepo, r.auditRepo, r.txMgr, log),
		updateAskByKeysUC: ticketUsecases.NewUpdateAskByKeysUseCase(r.askRepo, r.auditRepo, r.txMgr, log),
		acceptanceRateUC:  ticketUsecases.NewGetAcceptanceRateUseCase(r.contactRepo, r.askRepo, log),
	}
}
