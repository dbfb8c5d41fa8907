package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

// TicketModel represents the database persistence model for tickets.
// Event, contact and user references are nulled when the target is deleted.
type TicketModel struct {
	ID           uint      `gorm:"primaryKey"`
	TicketStatus string    `gorm:"size:20;not null;default:'OPEN';index"`
	TicketType   string    `gorm:"size:20;not null;default:'UNKNOWN';index"`
	Priority     int       `gorm:"not null;default:3;index"`
	Title        string    `gorm:"size:255;not null;default:''"`
	Description  string    `gorm:"type:text"`
	EventID      *uint     `gorm:"index"`
	ContactID    *uint     `gorm:"index"`
	AssignedToID *uint     `gorm:"index"`
	ReportedByID *uint     `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	ModifiedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type TicketCommentModel struct {
	ID         uint      `gorm:"primaryKey"`
	TicketID   uint      `gorm:"not null;index"`
	AuthorID   *uint     `gorm:"index"`
	Message    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (TicketCommentModel) TableName() string {
	return constants.TableTicketComments
}

type TicketAskModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;index:idx_ticket_asks_ticket_contact"`
	ContactID *uint     `gorm:"index:idx_ticket_asks_ticket_contact"`
	Status    string    `gorm:"size:20;not null;default:'unknown'"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	EditedAt  *time.Time
}

func (TicketAskModel) TableName() string {
	return constants.TableTicketAsks
}

type TicketAuditLogModel struct {
	ID        uint              `gorm:"primaryKey"`
	TicketID  uint              `gorm:"not null;index"`
	LogType   string            `gorm:"size:32;not null"`
	Message   string            `gorm:"type:text"`
	ActorID   *uint             `gorm:"index"`
	Data      datatypes.JSONMap `gorm:"not null"`
	CreatedAt time.Time         `gorm:"not null;index"`
}

func (TicketAuditLogModel) TableName() string {
	return constants.TableTicketAuditLogs
}
