package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// Repository exposes user persistence operations. Every read is scoped to
// state = active; mutations expect a row previously resolved through that
// scope.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("state = ?", enums.UserStateActive)
}

func withSearch(q *gorm.DB, term string) *gorm.DB {
	if term == "" {
		return q
	}
	pattern := "%" + term + "%"
	return q.Where("username LIKE ? OR display_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
}

// FindActiveByID loads a user within the active scope.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.active(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActive returns a page of active users, optionally filtered by a
// case-sensitive substring match over username, display_name, and email.
// Rows are ordered by created_at with id as the stable tie-breaker.
func (r *Repository) ListActive(ctx context.Context, term string, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := withSearch(r.active(ctx).Model(&models.User{}), term).
		Order("created_at, id").
		Limit(limit).
		Offset(offset)
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountActive returns the total active rows matching the search term.
func (r *Repository) CountActive(ctx context.Context, term string) (int64, error) {
	var count int64
	q := withSearch(r.active(ctx).Model(&models.User{}), term)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new user. Uniqueness is enforced by the database index;
// callers translate the constraint violation, never pre-check.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists the full row of a previously resolved active user.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SoftDelete moves the user to the deleted state. The row always persists.
func (r *Repository) SoftDelete(ctx context.Context, user *models.User) error {
	user.State = enums.UserStateDeleted
	return r.db.WithContext(ctx).
		Model(user).
		Update("state", enums.UserStateDeleted).Error
}
