package models

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:150;not null;uniqueIndex"`
	Email       string `gorm:"size:254;not null;uniqueIndex"`
	FirstName   string `gorm:"size:150;not null;default:''"`
	LastName    string `gorm:"size:150;not null;default:''"`
	Role        string `gorm:"size:20;not null;default:'needs_approval'"`
	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	ModifiedAt  time.Time `gorm:"not null;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

type UserEmailAddressModel struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;index"`
	Email    string `gorm:"size:254;not null;index"`
	Verified bool   `gorm:"not null;default:false"`
	Primary  bool   `gorm:"column:is_primary;not null;default:false"`
}

func (UserEmailAddressModel) TableName() string {
	return constants.TableUserEmailAddresses
}

type SocialAccountModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uk_social_accounts_user_provider"`
	Provider    string `gorm:"size:30;not null;uniqueIndex:uk_social_accounts_provider_uid;uniqueIndex:uk_social_accounts_user_provider"`
	UID         string `gorm:"size:191;not null;uniqueIndex:uk_social_accounts_provider_uid"`
	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"not null"`
}

func (SocialAccountModel) TableName() string {
	return constants.TableSocialAccounts
}
