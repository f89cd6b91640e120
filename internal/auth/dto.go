package auth

import (
	"github.com/sidelinehq/sideline-backend/internal/users"
)

// LoginRequest carries the credentials posted to the login endpoint. Login
// accepts either the username or the email address.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token alongside the account profile.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
