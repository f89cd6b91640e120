package enums

import "fmt"

// ParticipantState describes the allowed values for the `state` column in
// message_participants. Inactive participants have left the conversation.
type ParticipantState string

const (
	ParticipantStateActive   ParticipantState = "active"
	ParticipantStateInactive ParticipantState = "inactive"
)

var validParticipantStates = []ParticipantState{
	ParticipantStateActive,
	ParticipantStateInactive,
}

// IsValid reports whether the value matches the canonical participant state enum.
func (s ParticipantState) IsValid() bool {
	for _, candidate := range validParticipantStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseParticipantState converts the raw string to ParticipantState.
func ParseParticipantState(value string) (ParticipantState, error) {
	for _, candidate := range validParticipantStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid participant state %q", value)
}
