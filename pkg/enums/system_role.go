package enums

import "fmt"

// SystemRole is the application-wide role attached to a user account.
type SystemRole string

const (
	SystemRoleAdmin  SystemRole = "admin"
	SystemRoleMember SystemRole = "member"
)

var validSystemRoles = []SystemRole{
	SystemRoleAdmin,
	SystemRoleMember,
}

// IsValid reports whether the value matches the canonical system role enum.
func (r SystemRole) IsValid() bool {
	for _, candidate := range validSystemRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSystemRole converts the raw string to SystemRole.
func ParseSystemRole(value string) (SystemRole, error) {
	for _, candidate := range validSystemRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid system role %q", value)
}
