package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// GroupMembership links a user with a group and captures their role/state.
// Read paths only surface active memberships.
type GroupMembership struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	GroupID   uuid.UUID             `gorm:"column:group_id;type:uuid;not null"`
	Role      enums.GroupRole       `gorm:"column:role;not null;default:'member'"`
	State     enums.MembershipState `gorm:"column:state;not null;default:'active'"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	Group *Group `gorm:"foreignKey:GroupID"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (m *GroupMembership) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
