package dto

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/mapper"
)

type ContactDTO struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	DiscordID  string    `json:"discord_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type TagDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type TagAssignmentDTO struct {
	ID        uint      `json:"id"`
	ContactID uint      `json:"contact"`
	TagID     uint      `json:"tag"`
	TagName   string    `json:"tag_name"`
	TagColor  string    `json:"tag_color"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityDTO struct {
	ID           uint                   `json:"id"`
	ContactID    uint                   `json:"contact"`
	ActivityType string                 `json:"activity_type"`
	Data         map[string]interface{} `json:"data"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ContactWithTagsDTO is returned by the person-and-tags upsert.
type ContactWithTagsDTO struct {
	ContactDTO
	Tags    []TagDTO `json:"tags"`
	Created bool     `json:"created"`
}

type ParticipationSummaryDTO struct {
	ID        uint   `json:"id"`
	EventID   uint   `json:"event"`
	EventName string `json:"event_name"`
	Status    string `json:"status"`
}

type MembershipSummaryDTO struct {
	GroupID     uint   `json:"group"`
	GroupName   string `json:"group_name"`
	AccessLevel int    `json:"access_level"`
}

type ContactWithRelationsDTO struct {
	ContactDTO
	Tags           []TagDTO                  `json:"tags"`
	Participations []ParticipationSummaryDTO `json:"participations"`
	Groups         []MembershipSummaryDTO    `json:"groups"`
}

func ToContactDTO(c *contact.Contact) *ContactDTO {
	if c == nil {
		return nil
	}
	return &ContactDTO{
		ID:         c.ID(),
		FullName:   c.FullName(),
		DiscordID:  c.DiscordID(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		Note:       c.Note(),
		CreatedAt:  c.CreatedAt(),
		ModifiedAt: c.ModifiedAt(),
	}
}

func ToContactDTOs(contacts []*contact.Contact) []*ContactDTO {
	return mapper.MapSlice(contacts, ToContactDTO)
}

func ToTagDTO(t *contact.Tag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{
		ID:         t.ID(),
		Name:       t.Name(),
		Color:      t.Color(),
		CreatedAt:  t.CreatedAt(),
		ModifiedAt: t.ModifiedAt(),
	}
}

func ToTagDTOs(tags []*contact.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, *ToTagDTO(t))
	}
	return out
}

func ToTagAssignmentDTO(a *contact.TagAssignment) *TagAssignmentDTO {
	return &TagAssignmentDTO{
		ID:        a.ID,
		ContactID: a.ContactID,
		TagID:     a.TagID,
		TagName:   a.TagName,
		TagColor:  a.TagColor,
		CreatedAt: a.CreatedAt,
	}
}

func ToTagAssignmentDTOs(list []*contact.TagAssignment) []*TagAssignmentDTO {
	return mapper.MapSlice(list, ToTagAssignmentDTO)
}

func ToActivityDTO(a *contact.Activity) *ActivityDTO {
	return &ActivityDTO{
		ID:           a.ID,
		ContactID:    a.ContactID,
		ActivityType: a.Type.String(),
		Data:         a.Data,
		CreatedAt:    a.CreatedAt,
	}
}

func ToActivityDTOs(list []*contact.Activity) []*ActivityDTO {
	return mapper.MapSlice(list, ToActivityDTO)
}

// ToContactWithRelationsDTO combines a contact with its already loaded
// relations. Missing relations render as empty lists.
func ToContactWithRelationsDTO(c *contact.Contact, tags []*contact.Tag, parts []*event.Participation, memberships []*group.Membership) *ContactWithRelationsDTO {
	out := &ContactWithRelationsDTO{
		ContactDTO:     *ToContactDTO(c),
		Tags:           ToTagDTOs(tags),
		Participations: make([]ParticipationSummaryDTO, 0, len(parts)),
		Groups:         make([]MembershipSummaryDTO, 0, len(memberships)),
	}
	for _, p := range parts {
		out.Participations = append(out.Participations, ParticipationSummaryDTO{
			ID:        p.ID,
			EventID:   p.EventID,
			EventName: p.EventName,
			Status:    p.Status.String(),
		})
	}
	for _, m := range memberships {
		out.Groups = append(out.Groups, MembershipSummaryDTO{
			GroupID:     m.GroupID,
			GroupName:   m.GroupName,
			AccessLevel: int(m.AccessLevel),
		})
	}
	return out
}
