package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleOrganizer))
	assert.True(t, RoleOrganizer.AtLeast(RoleOrganizer))
	assert.False(t, RoleNeedsApproval.AtLeast(RoleOrganizer))
	assert.False(t, UserRole("root").AtLeast(RoleNeedsApproval))
}

func TestParseUserRole(t *testing.T) {
	role, ok := ParseUserRole("organizer")
	assert.True(t, ok)
	assert.Equal(t, RoleOrganizer, role)

	_, ok = ParseUserRole("superuser")
	assert.False(t, ok)
}
