package enums

import "fmt"

// GroupRole is the role a user holds inside a single group.
type GroupRole string

const (
	GroupRoleLeader GroupRole = "leader"
	GroupRoleMember GroupRole = "member"
)

var validGroupRoles = []GroupRole{
	GroupRoleLeader,
	GroupRoleMember,
}

// IsValid reports whether the value matches the canonical group role enum.
func (r GroupRole) IsValid() bool {
	for _, candidate := range validGroupRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseGroupRole converts the raw string to GroupRole.
func ParseGroupRole(value string) (GroupRole, error) {
	for _, candidate := range validGroupRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group role %q", value)
}
