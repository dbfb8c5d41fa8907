package contact

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

const maxTagNameLength = 64

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var tagNameCaser = cases.Lower(language.Und)

// FoldTagName is the key used for case-insensitive tag name matching.
func FoldTagName(name string) string {
	return tagNameCaser.String(strings.TrimSpace(name))
}

type Tag struct {
	id         uint
	name       string
	color      string
	createdAt  time.Time
	modifiedAt time.Time
}

func NewTag(name, color string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if color == "" {
		color = constants.DefaultTagColor
	}
	if err := validateTag(name, color); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Tag{
		name:       name,
		color:      color,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

func ReconstructTag(id uint, name, color string, createdAt, modifiedAt time.Time) (*Tag, error) {
	if id == 0 {
		return nil, fmt.Errorf("tag ID cannot be zero")
	}
	return &Tag{
		id:         id,
		name:       name,
		color:      color,
		createdAt:  createdAt,
		modifiedAt: modifiedAt,
	}, nil
}

func validateTag(name, color string) error {
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if utf8.RuneCountInString(name) > maxTagNameLength {
		return fmt.Errorf("tag name exceeds maximum length of %d characters", maxTagNameLength)
	}
	if !hexColorPattern.MatchString(color) {
		return fmt.Errorf("color must be a #rrggbb hex value")
	}
	return nil
}

func (t *Tag) ID() uint {
	return t.id
}

func (t *Tag) Name() string {
	return t.name
}

func (t *Tag) Color() string {
	return t.color
}

func (t *Tag) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tag) ModifiedAt() time.Time {
	return t.modifiedAt
}

func (t *Tag) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tag ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tag ID cannot be zero")
	}
	t.id = id
	return nil
}

// Update changes name and/or color; nil arguments are left unchanged.
func (t *Tag) Update(name, color *string) error {
	newName, newColor := t.name, t.color
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if color != nil {
		newColor = *color
	}
	if err := validateTag(newName, newColor); err != nil {
		return err
	}
	t.name = newName
	t.color = newColor
	t.modifiedAt = biztime.NowUTC()
	return nil
}

// TagAssignment links a tag to a contact. TagName and TagColor are filled by
// reads that join the tag.
type TagAssignment struct {
	ID        uint
	ContactID uint
	TagID     uint
	CreatedAt time.Time

	TagName  string
	TagColor string
}

// UniqueTagNames trims, drops blanks and removes case-insensitive duplicates,
// keeping the first spelling of each name.
func UniqueTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := FoldTagName(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
