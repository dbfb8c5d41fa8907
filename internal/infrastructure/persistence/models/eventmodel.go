package models

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

// EventModel represents the database persistence model for events
type EventModel struct {
	ID              uint       `gorm:"primaryKey"`
	Name            string     `gorm:"size:100;not null;default:''"`
	Description     string     `gorm:"type:text"`
	LocationName    string     `gorm:"size:255;not null;default:''"`
	LocationAddress string     `gorm:"size:255;not null;default:''"`
	StartsAt        *time.Time `gorm:"index"`
	EndsAt          *time.Time
	EventStatus     string    `gorm:"size:20;not null;default:'draft';index"`
	CreatedAt       time.Time `gorm:"not null;index"`
	ModifiedAt      time.Time `gorm:"not null;autoUpdateTime"`
}

func (EventModel) TableName() string {
	return constants.TableEvents
}

type EventParticipationModel struct {
	ID         uint      `gorm:"primaryKey"`
	EventID    uint      `gorm:"not null;uniqueIndex:uk_event_participations_event_contact;index"`
	ContactID  uint      `gorm:"not null;uniqueIndex:uk_event_participations_event_contact;index"`
	Status     string    `gorm:"size:20;not null;default:'unknown';index"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (EventParticipationModel) TableName() string {
	return constants.TableEventParticipations
}

type UserInEventModel struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"not null;uniqueIndex:uk_users_in_events_user_event;index"`
	EventID  uint      `gorm:"not null;uniqueIndex:uk_users_in_events_user_event;index"`
	JoinedAt time.Time `gorm:"not null"`
}

func (UserInEventModel) TableName() string {
	return constants.TableUsersInEvents
}
