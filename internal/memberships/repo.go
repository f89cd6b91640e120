package memberships

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

// Repository exposes group membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveForUser returns the user's active memberships ordered by group
// name. The group row is preloaded only when the caller asks for it.
func (r *Repository) ListActiveForUser(ctx context.Context, userID uuid.UUID, includeGroup bool) ([]MembershipDTO, error) {
	var rows []models.GroupMembership

	q := r.db.WithContext(ctx).
		Joins("JOIN groups ON groups.id = group_memberships.group_id").
		Where("group_memberships.user_id = ? AND group_memberships.state = ?", userID, enums.MembershipStateActive).
		Order("groups.name")
	if includeGroup {
		q = q.Preload("Group")
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]MembershipDTO, 0, len(rows))
	for i := range rows {
		results = append(results, *FromModel(&rows[i]))
	}
	return results, nil
}
