package models

// All lists every persistence model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&UserEmailAddressModel{},
		&SocialAccountModel{},
		&ContactModel{},
		&TagModel{},
		&TagAssignmentModel{},
		&ContactActivityModel{},
		&GroupModel{},
		&GroupMembershipModel{},
		&EventModel{},
		&EventParticipationModel{},
		&UserInEventModel{},
		&TicketModel{},
		&TicketCommentModel{},
		&TicketAskModel{},
		&TicketAuditLogModel{},
	}
}
