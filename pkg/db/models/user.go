package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// User represents the canonical identity entity. Rows are never hard
// deleted; the state column carries the soft-delete lifecycle so historical
// references (memberships, sessions, api keys, messages) keep a resolvable
// key.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string           `gorm:"type:text;not null;uniqueIndex:uq_users_username"`
	Email        string           `gorm:"type:text;not null;uniqueIndex:uq_users_email"`
	DisplayName  string           `gorm:"column:display_name;not null"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	SystemRole   enums.SystemRole `gorm:"column:system_role;not null;default:'member'"`
	State        enums.UserState  `gorm:"column:state;not null;default:'active'"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the identifier for drivers without a uuid default.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave infers the state when unset, immediately before any write, and
// rejects values outside the enum.
func (u *User) BeforeSave(_ *gorm.DB) error {
	if u.State == "" {
		u.State = enums.UserStateActive
	}
	if !u.State.IsValid() {
		return fmt.Errorf("invalid user state %q", u.State)
	}
	if u.SystemRole == "" {
		u.SystemRole = enums.SystemRoleMember
	}
	if !u.SystemRole.IsValid() {
		return fmt.Errorf("invalid system role %q", u.SystemRole)
	}
	return nil
}

// Active reports whether the user is visible through default read paths.
func (u *User) Active() bool {
	return u.State == enums.UserStateActive
}
