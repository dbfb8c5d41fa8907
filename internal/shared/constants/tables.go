package constants

// Table names
const (
	TableContacts            = "contacts"
	TableTags                = "tags"
	TableTagAssignments      = "tag_assignments"
	TableContactActivities   = "contact_activities"
	TableEvents              = "events"
	TableEventParticipations = "event_participations"
	TableUsersInEvents       = "users_in_events"
	TableTickets             = "tickets"
	TableTicketComments      = "ticket_comments"
	TableTicketAsks          = "ticket_asks"
	TableTicketAuditLogs     = "ticket_audit_logs"
	TableGroups              = "contact_groups"
	TableGroupMemberships    = "group_memberships"
	TableUsers               = "users"
	TableUserEmailAddresses  = "user_email_addresses"
	TableSocialAccounts      = "social_accounts"
)
