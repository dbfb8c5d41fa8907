package contact

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const (
	maxFullNameLength  = 200
	maxDiscordIDLength = 100
	maxPhoneLength     = 50
	maxEmailLength     = 254
)

// Contact is a tracked person. It is independent of any login account.
type Contact struct {
	id         uint
	fullName   string
	discordID  string
	email      string
	phone      string
	note       string
	createdAt  time.Time
	modifiedAt time.Time
}

// Fields holds the writable scalar fields of a contact.
type Fields struct {
	FullName  string
	DiscordID string
	Email     string
	Phone     string
	Note      string
}

func (f Fields) normalized() Fields {
	return Fields{
		FullName:  strings.TrimSpace(f.FullName),
		DiscordID: strings.TrimSpace(f.DiscordID),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Note:      f.Note,
	}
}

func (f Fields) validate() error {
	if utf8.RuneCountInString(f.FullName) > maxFullNameLength {
		return fmt.Errorf("full_name exceeds maximum length of %d characters", maxFullNameLength)
	}
	if utf8.RuneCountInString(f.DiscordID) > maxDiscordIDLength {
		return fmt.Errorf("discord_id exceeds maximum length of %d characters", maxDiscordIDLength)
	}
	if utf8.RuneCountInString(f.Email) > maxEmailLength {
		return fmt.Errorf("email exceeds maximum length of %d characters", maxEmailLength)
	}
	if utf8.RuneCountInString(f.Phone) > maxPhoneLength {
		return fmt.Errorf("phone exceeds maximum length of %d characters", maxPhoneLength)
	}
	return nil
}

func NewContact(f Fields) (*Contact, error) {
	f = f.normalized()
	if err := f.validate(); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Contact{
		fullName:   f.FullName,
		discordID:  f.DiscordID,
		email:      f.Email,
		phone:      f.Phone,
		note:       f.Note,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

func ReconstructContact(id uint, f Fields, createdAt, modifiedAt time.Time) (*Contact, error) {
	if id == 0 {
		return nil, fmt.Errorf("contact ID cannot be zero")
	}
	return &Contact{
		id:         id,
		fullName:   f.FullName,
		discordID:  f.DiscordID,
		email:      f.Email,
		phone:      f.Phone,
		note:       f.Note,
		createdAt:  createdAt,
		modifiedAt: modifiedAt,
	}, nil
}

func (c *Contact) ID() uint {
	return c.id
}

func (c *Contact) FullName() string {
	return c.fullName
}

func (c *Contact) DiscordID() string {
	return c.discordID
}

func (c *Contact) Email() string {
	return c.email
}

func (c *Contact) Phone() string {
	return c.phone
}

func (c *Contact) Note() string {
	return c.note
}

func (c *Contact) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Contact) ModifiedAt() time.Time {
	return c.modifiedAt
}

func (c *Contact) Fields() Fields {
	return Fields{
		FullName:  c.fullName,
		DiscordID: c.discordID,
		Email:     c.email,
		Phone:     c.phone,
		Note:      c.note,
	}
}

func (c *Contact) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("contact ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("contact ID cannot be zero")
	}
	c.id = id
	return nil
}

// Overwrite replaces every scalar field.
func (c *Contact) Overwrite(f Fields) error {
	f = f.normalized()
	if err := f.validate(); err != nil {
		return err
	}
	c.fullName = f.FullName
	c.discordID = f.DiscordID
	c.email = f.Email
	c.phone = f.Phone
	c.note = f.Note
	c.modifiedAt = biztime.NowUTC()
	return nil
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	FullName  *string
	DiscordID *string
	Email     *string
	Phone     *string
	Note      *string
}

func (c *Contact) Apply(p Patch) error {
	f := c.Fields()
	if p.FullName != nil {
		f.FullName = *p.FullName
	}
	if p.DiscordID != nil {
		f.DiscordID = *p.DiscordID
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.Phone != nil {
		f.Phone = *p.Phone
	}
	if p.Note != nil {
		f.Note = *p.Note
	}
	return c.Overwrite(f)
}
