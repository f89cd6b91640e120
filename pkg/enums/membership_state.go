package enums

import "fmt"

// MembershipState describes the allowed values for the `state` column in
// group_memberships. Only active memberships are visible on read paths.
type MembershipState string

const (
	MembershipStateActive   MembershipState = "active"
	MembershipStateInactive MembershipState = "inactive"
)

var validMembershipStates = []MembershipState{
	MembershipStateActive,
	MembershipStateInactive,
}

// IsValid reports whether the value matches the canonical membership state enum.
func (s MembershipState) IsValid() bool {
	for _, candidate := range validMembershipStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseMembershipState converts the raw string to MembershipState.
func ParseMembershipState(value string) (MembershipState, error) {
	for _, candidate := range validMembershipStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership state %q", value)
}
