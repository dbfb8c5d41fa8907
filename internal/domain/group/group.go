package group

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const maxNameLength = 255

// Group is a named set of contacts, such as a working group or team.
type Group struct {
	id         uint
	name       string
	createdAt  time.Time
	modifiedAt time.Time
}

func NewGroup(name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &Group{name: name, createdAt: now, modifiedAt: now}, nil
}

func ReconstructGroup(id uint, name string, createdAt, modifiedAt time.Time) (*Group, error) {
	if id == 0 {
		return nil, fmt.Errorf("group ID cannot be zero")
	}
	return &Group{id: id, name: name, createdAt: createdAt, modifiedAt: modifiedAt}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("group name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("group name exceeds maximum length of %d characters", maxNameLength)
	}
	return nil
}

func (g *Group) ID() uint {
	return g.id
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Group) ModifiedAt() time.Time {
	return g.modifiedAt
}

func (g *Group) SetID(id uint) error {
	if g.id != 0 {
		return fmt.Errorf("group ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("group ID cannot be zero")
	}
	g.id = id
	return nil
}

func (g *Group) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	g.name = name
	g.modifiedAt = biztime.NowUTC()
	return nil
}
