package valueobjects

// AuditLogType tags an entry of the ticket audit log.
type AuditLogType string

const (
	LogCreated         AuditLogType = "CREATED"
	LogUpdated         AuditLogType = "UPDATED"
	LogClaim           AuditLogType = "CLAIM"
	LogUnclaimed       AuditLogType = "UNCLAIMED"
	LogStatus          AuditLogType = "STATUS"
	LogContactResponse AuditLogType = "CONTACT_RESPONSE"
	LogComment         AuditLogType = "COMMENT"
	LogAssigned        AuditLogType = "ASSIGNED"
)

var validLogTypes = map[AuditLogType]bool{
	LogCreated:         true,
	LogUpdated:         true,
	LogClaim:           true,
	LogUnclaimed:       true,
	LogStatus:          true,
	LogContactResponse: true,
	LogComment:         true,
	LogAssigned:        true,
}

func (t AuditLogType) String() string {
	return string(t)
}

func (t AuditLogType) IsValid() bool {
	return validLogTypes[t]
}

var auditLogTypeLabels = map[AuditLogType]string{
	LogCreated:         "Ticket created",
	LogUpdated:         "Ticket updated",
	LogClaim:           "Ticket claimed",
	LogUnclaimed:       "Ticket unclaimed",
	LogStatus:          "Ticket status changed",
	LogContactResponse: "Contact responded",
	LogComment:         "New comment",
	LogAssigned:        "Ticket assigned",
}

// Label is the human readable name shown next to the code.
func (t AuditLogType) Label() string {
	return auditLogTypeLabels[t]
}
