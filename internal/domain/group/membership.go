package group

import (
	"fmt"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

// AccessLevel is what a member may do with the group's records.
type AccessLevel int

const (
	AccessView AccessLevel = 1
	AccessEdit AccessLevel = 2
)

func (a AccessLevel) IsValid() bool {
	return a == AccessView || a == AccessEdit
}

func (a AccessLevel) Label() string {
	switch a {
	case AccessView:
		return "View"
	case AccessEdit:
		return "Edit"
	}
	return ""
}

func NewAccessLevel(value int) (AccessLevel, error) {
	a := AccessLevel(value)
	if !a.IsValid() {
		return 0, fmt.Errorf("invalid access level: %d", value)
	}
	return a, nil
}

// Membership places a contact in a group; the pair is unique.
type Membership struct {
	ID          uint
	GroupID     uint
	ContactID   uint
	AccessLevel AccessLevel
	CreatedAt   time.Time

	GroupName       string
	ContactFullName string
}

func NewMembership(groupID, contactID uint, level AccessLevel) (*Membership, error) {
	if groupID == 0 {
		return nil, fmt.Errorf("group ID is required")
	}
	if contactID == 0 {
		return nil, fmt.Errorf("contact ID is required")
	}
	if level == 0 {
		level = AccessView
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("invalid access level: %d", level)
	}
	return &Membership{
		GroupID:     groupID,
		ContactID:   contactID,
		AccessLevel: level,
		CreatedAt:   biztime.NowUTC(),
	}, nil
}

// WithCount pairs a group with its number of members.
type WithCount struct {
	Group       *Group
	MemberCount int64
}
