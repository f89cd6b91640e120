package enums

import "fmt"

// UserState describes the allowed values for the `state` column in users.
// Deleting a user never removes the row; it only moves the state to deleted.
type UserState string

const (
	UserStateActive  UserState = "active"
	UserStateDeleted UserState = "deleted"
)

var validUserStates = []UserState{
	UserStateActive,
	UserStateDeleted,
}

// IsValid reports whether the value matches the canonical user state enum.
func (s UserState) IsValid() bool {
	for _, candidate := range validUserStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseUserState converts the raw string to UserState.
func ParseUserState(value string) (UserState, error) {
	for _, candidate := range validUserStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user state %q", value)
}
