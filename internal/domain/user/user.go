package user

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const (
	maxUsernameLength = 150
	maxNameLength     = 150
)

// User is a login account. Accounts are provisioned by administrators; social
// login only links to an existing account.
type User struct {
	id          uint
	username    string
	email       string
	firstName   string
	lastName    string
	role        authorization.UserRole
	lastLoginAt *time.Time
	createdAt   time.Time
	modifiedAt  time.Time
}

type Params struct {
	ID          uint
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Role        authorization.UserRole
	LastLoginAt *time.Time
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

func NewUser(p Params) (*User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Role == "" {
		p.Role = authorization.RoleNeedsApproval
	}
	if p.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if err := validateProfile(p.Username, p.FirstName, p.LastName); err != nil {
		return nil, err
	}
	if !p.Role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", p.Role)
	}

	now := biztime.NowUTC()
	return &User{
		username:   p.Username,
		email:      p.Email,
		firstName:  p.FirstName,
		lastName:   p.LastName,
		role:       p.Role,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

func ReconstructUser(p Params) (*User, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:          p.ID,
		username:    p.Username,
		email:       p.Email,
		firstName:   p.FirstName,
		lastName:    p.LastName,
		role:        p.Role,
		lastLoginAt: p.LastLoginAt,
		createdAt:   p.CreatedAt,
		modifiedAt:  p.ModifiedAt,
	}, nil
}

func validateProfile(username, firstName, lastName string) error {
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return fmt.Errorf("username exceeds maximum length of %d characters", maxUsernameLength)
	}
	if utf8.RuneCountInString(firstName) > maxNameLength || utf8.RuneCountInString(lastName) > maxNameLength {
		return fmt.Errorf("names cannot exceed %d characters", maxNameLength)
	}
	return nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) ModifiedAt() time.Time {
	return u.modifiedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// UpdateProfile changes the self-editable fields; nil arguments are kept.
func (u *User) UpdateProfile(username, firstName, lastName *string) error {
	next := *u
	if username != nil {
		next.username = strings.TrimSpace(*username)
		if next.username == "" {
			return fmt.Errorf("username cannot be empty")
		}
	}
	if firstName != nil {
		next.firstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		next.lastName = strings.TrimSpace(*lastName)
	}
	if err := validateProfile(next.username, next.firstName, next.lastName); err != nil {
		return err
	}
	next.modifiedAt = biztime.NowUTC()
	*u = next
	return nil
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.modifiedAt = biztime.NowUTC()
	return nil
}

func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
}

// DisplayName is the full name, falling back to the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.firstName + " " + u.lastName)
	if full == "" {
		return u.username
	}
	return full
}
