package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// GroupDTO is the group shape nested inside a membership row.
type GroupDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

// MembershipDTO is one row of a user's group roster.
type MembershipDTO struct {
	ID       uuid.UUID             `json:"id"`
	GroupID  uuid.UUID             `json:"group_id"`
	Role     enums.GroupRole       `json:"role"`
	State    enums.MembershipState `json:"state"`
	JoinedAt time.Time             `json:"joined_at"`
	Group    *GroupDTO             `json:"group,omitempty"`
}

// FromModel maps a membership row, including the preloaded group when
// present.
func FromModel(m *models.GroupMembership) *MembershipDTO {
	if m == nil {
		return nil
	}

	dto := &MembershipDTO{
		ID:       m.ID,
		GroupID:  m.GroupID,
		Role:     m.Role,
		State:    m.State,
		JoinedAt: m.CreatedAt,
	}
	if m.Group != nil {
		dto.Group = &GroupDTO{
			ID:          m.Group.ID,
			Name:        m.Group.Name,
			Description: m.Group.Description,
		}
	}
	return dto
}
