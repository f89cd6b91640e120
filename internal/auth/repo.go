package auth

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// Repository exposes the persistence the login flow needs.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByLogin resolves an active user by username or email.
func (r *Repository) FindActiveByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("state = ?", enums.UserStateActive).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession records an issued token.
func (r *Repository) CreateSession(ctx context.Context, session *models.LoginSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// HasSession reports whether the token id has an unexpired session.
func (r *Repository) HasSession(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoginSession{}).
		Where("token_id = ? AND expires_at > ?", tokenID, time.Now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
