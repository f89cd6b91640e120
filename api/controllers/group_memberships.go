package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/api/responses"
	"github.com/sidelinehq/sideline-backend/api/validators"
	"github.com/sidelinehq/sideline-backend/internal/authz"
	"github.com/sidelinehq/sideline-backend/internal/memberships"
	"github.com/sidelinehq/sideline-backend/internal/users"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/logger"
)

// MembershipLister provides a user's active group memberships.
type MembershipLister interface {
	ListActiveForUser(ctx context.Context, userID uuid.UUID, includeGroup bool) ([]memberships.MembershipDTO, error)
}

// UserGroupMemberships lists the active group memberships of an active
// user. `?include=group` nests the group row in each entry.
func UserGroupMemberships(userSvc users.Service, lister MembershipLister, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userSvc == nil || lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memberships service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := userSvc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionRead, &authz.Target{ID: user.ID, Role: user.SystemRole}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		includeGroup := r.URL.Query().Get("include") == "group"
		rows, err := lister.ListActiveForUser(r.Context(), id, includeGroup)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list memberships"))
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
