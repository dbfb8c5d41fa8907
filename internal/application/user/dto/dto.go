package dto

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/mapper"
)

type EmailAddressDTO struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}

type SocialAccountDTO struct {
	ID          uint       `json:"id"`
	Provider    string     `json:"provider"`
	UID         string     `json:"uid"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"date_joined"`
}

// UserDTO is the account view. EmailAddresses and SocialAccounts are only
// filled for the current user.
type UserDTO struct {
	ID             uint               `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	DisplayName    string             `json:"display_name"`
	Role           string             `json:"role"`
	LastLoginAt    *time.Time         `json:"last_login"`
	CreatedAt      time.Time          `json:"date_joined"`
	EmailAddresses []EmailAddressDTO  `json:"email_addresses,omitempty"`
	SocialAccounts []SocialAccountDTO `json:"social_accounts,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	return mapper.MapSlice(users, ToUserDTO)
}

// ToCurrentUserDTO includes the linked addresses and social accounts.
func ToCurrentUserDTO(u *user.User, emails []*user.EmailAddress, socials []*user.SocialAccount) *UserDTO {
	out := ToUserDTO(u)
	out.EmailAddresses = make([]EmailAddressDTO, 0, len(emails))
	for _, e := range emails {
		out.EmailAddresses = append(out.EmailAddresses, EmailAddressDTO{
			ID:       e.ID,
			Email:    e.Email,
			Verified: e.Verified,
			Primary:  e.Primary,
		})
	}
	out.SocialAccounts = make([]SocialAccountDTO, 0, len(socials))
	for _, s := range socials {
		out.SocialAccounts = append(out.SocialAccounts, SocialAccountDTO{
			ID:          s.ID,
			Provider:    s.Provider.String(),
			UID:         s.UID,
			LastLoginAt: s.LastLoginAt,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out
}
