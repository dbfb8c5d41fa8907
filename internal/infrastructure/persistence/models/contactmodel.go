package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

// ContactModel represents the database persistence model for contacts
type ContactModel struct {
	ID         uint      `gorm:"primaryKey"`
	FullName   string    `gorm:"size:200;not null;default:''"`
	DiscordID  string    `gorm:"size:100;not null;default:'';index"`
	Email      string    `gorm:"size:254;not null;default:''"`
	Phone      string    `gorm:"size:50;not null;default:''"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (ContactModel) TableName() string {
	return constants.TableContacts
}

type TagModel struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:64;not null;uniqueIndex"`
	Color      string    `gorm:"size:7;not null;default:'#9e9e9e'"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (TagModel) TableName() string {
	return constants.TableTags
}

type TagAssignmentModel struct {
	ID        uint      `gorm:"primaryKey"`
	ContactID uint      `gorm:"not null;uniqueIndex:uk_tag_assignments_contact_tag;index"`
	TagID     uint      `gorm:"not null;uniqueIndex:uk_tag_assignments_contact_tag;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (TagAssignmentModel) TableName() string {
	return constants.TableTagAssignments
}

type ContactActivityModel struct {
	ID           uint              `gorm:"primaryKey"`
	ContactID    uint              `gorm:"not null;index"`
	ActivityType string            `gorm:"size:32;not null"`
	Data         datatypes.JSONMap `gorm:"not null"`
	CreatedAt    time.Time         `gorm:"not null;index"`
}

func (ContactActivityModel) TableName() string {
	return constants.TableContactActivities
}
