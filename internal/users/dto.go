package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credential fields entirely.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	DisplayName string           `json:"display_name"`
	SystemRole  enums.SystemRole `json:"system_role"`
	State       enums.UserState  `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateUserInput is the full-privilege field set, the only path that may
// carry credentials.
type CreateUserInput struct {
	DisplayName          string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// UpdateUserInput is the restricted field set. Credential fields do not
// exist on this type, so the update path cannot touch the password hash.
type UpdateUserInput struct {
	DisplayName *string
	Username    *string
	Email       *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		SystemRole:  u.SystemRole,
		State:       u.State,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
