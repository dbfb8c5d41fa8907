package dto

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/mapper"
)

type GroupDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	MemberCount *int64    `json:"member_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

type MembershipDTO struct {
	ID                 uint      `json:"id"`
	GroupID            uint      `json:"group"`
	GroupName          string    `json:"group_name,omitempty"`
	ContactID          uint      `json:"contact"`
	ContactFullName    string    `json:"contact_full_name,omitempty"`
	AccessLevel        int       `json:"access_level"`
	AccessLevelDisplay string    `json:"access_level_display"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToGroupDTO(g *group.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{
		ID:         g.ID(),
		Name:       g.Name(),
		CreatedAt:  g.CreatedAt(),
		ModifiedAt: g.ModifiedAt(),
	}
}

func ToGroupDTOs(groups []*group.Group) []*GroupDTO {
	return mapper.MapSlice(groups, ToGroupDTO)
}

func ToGroupWithCountDTOs(rows []group.WithCount) []*GroupDTO {
	out := make([]*GroupDTO, 0, len(rows))
	for _, r := range rows {
		d := ToGroupDTO(r.Group)
		count := r.MemberCount
		d.MemberCount = &count
		out = append(out, d)
	}
	return out
}

func ToMembershipDTO(m *group.Membership) *MembershipDTO {
	return &MembershipDTO{
		ID:                 m.ID,
		GroupID:            m.GroupID,
		GroupName:          m.GroupName,
		ContactID:          m.ContactID,
		ContactFullName:    m.ContactFullName,
		AccessLevel:        int(m.AccessLevel),
		AccessLevelDisplay: m.AccessLevel.Label(),
		CreatedAt:          m.CreatedAt,
	}
}

func ToMembershipDTOs(list []*group.Membership) []*MembershipDTO {
	return mapper.MapSlice(list, ToMembershipDTO)
}
