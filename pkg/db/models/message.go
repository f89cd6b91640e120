package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// Message is a conversation entry. Senders are referenced by plain FK so a
// soft-deleted account stays resolvable in historical conversations.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID  uuid.UUID `gorm:"column:sender_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MessageParticipant links a user into a message thread. A user's messages
// are the ones reachable through their active participant rows.
type MessageParticipant struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MessageID uuid.UUID              `gorm:"column:message_id;type:uuid;not null"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null"`
	State     enums.ParticipantState `gorm:"column:state;not null;default:'active'"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`

	Message *Message `gorm:"foreignKey:MessageID"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (p *MessageParticipant) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
