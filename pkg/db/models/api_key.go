package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKey is a long-lived credential owned by a user. Only the hash is
// stored; the plaintext key is shown once at creation time.
type ApiKey struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	Name       string     `gorm:"column:name;type:text;not null"`
	KeyHash    string     `gorm:"column:key_hash;type:text;not null;uniqueIndex:uq_api_keys_key_hash"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (k *ApiKey) BeforeCreate(_ *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
