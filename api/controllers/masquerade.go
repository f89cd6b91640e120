package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/api/responses"
	"github.com/sidelinehq/sideline-backend/api/validators"
	"github.com/sidelinehq/sideline-backend/internal/authz"
	"github.com/sidelinehq/sideline-backend/internal/users"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/logger"
)

// MarkerWriter manages the signed masquerade marker on responses.
type MarkerWriter interface {
	Start(w http.ResponseWriter, targetID uuid.UUID) error
	Stop(w http.ResponseWriter)
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	dest := r.Referer()
	if dest == "" {
		dest = fallback
	}
	if dest == "" {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// MasqueradeStart resolves the target, runs the capability check, and sets
// the marker. Target resolution comes first so an unresolvable id reads as
// not found even to actors who would fail the capability check.
func MasqueradeStart(userSvc users.Service, marker MarkerWriter, az authz.Authorizer, rootPath string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userSvc == nil || marker == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "masquerade unavailable"))
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

		target, err := userSvc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := az.Can(r.Context(), actor, authz.ActionMasquerade, &authz.Target{ID: target.ID, Role: target.SystemRole}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := marker.Start(w, target.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set masquerade marker"))
			return
		}

		if logg != nil {
			ctx := logg.WithMasqueradeUserID(r.Context(), target.ID.String())
			logg.Info(ctx, "masquerade.start")
		}

		redirectBack(w, r, rootPath)
	}
}

// MasqueradeStop clears the marker and redirects. It never checks the
// marker first: stopping is always safe, even when no session is active.
func MasqueradeStop(marker MarkerWriter, rootPath string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if marker == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "masquerade unavailable"))
			return
		}

		marker.Stop(w)

		if logg != nil {
			logg.Info(r.Context(), "masquerade.stop")
		}

		redirectBack(w, r, rootPath)
	}
}
