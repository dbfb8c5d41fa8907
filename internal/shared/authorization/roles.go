package authorization

// UserRole is the general access level of an account.
type UserRole string

const (
	RoleNeedsApproval UserRole = "needs_approval"
	RoleOrganizer     UserRole = "organizer"
	RoleAdmin         UserRole = "admin"
)

var roleRank = map[UserRole]int{
	RoleNeedsApproval: 0,
	RoleOrganizer:     1,
	RoleAdmin:         2,
}

// AllRoles lists roles from lowest to highest access.
func AllRoles() []UserRole {
	return []UserRole{RoleNeedsApproval, RoleOrganizer, RoleAdmin}
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the access of min.
func (r UserRole) AtLeast(min UserRole) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

// ParseUserRole returns the role for s, or false when s is not a known role.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.IsValid()
}
