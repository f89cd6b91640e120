package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginSession records an issued access token per user, keyed by the JWT id.
type LoginSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	TokenID   string    `gorm:"column:token_id;type:text;not null;uniqueIndex:uq_login_sessions_token_id"`
	UserAgent string    `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (s *LoginSession) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
