package models

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

type GroupModel struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (GroupModel) TableName() string {
	return constants.TableGroups
}

type GroupMembershipModel struct {
	ID          uint      `gorm:"primaryKey"`
	GroupID     uint      `gorm:"not null;uniqueIndex:uk_group_memberships_group_contact;index"`
	ContactID   uint      `gorm:"not null;uniqueIndex:uk_group_memberships_group_contact;index"`
	AccessLevel int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (GroupMembershipModel) TableName() string {
	return constants.TableGroupMemberships
}
