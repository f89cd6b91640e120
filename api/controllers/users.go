package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/api/middleware"
	"github.com/sidelinehq/sideline-backend/api/responses"
	"github.com/sidelinehq/sideline-backend/api/validators"
	"github.com/sidelinehq/sideline-backend/internal/authz"
	"github.com/sidelinehq/sideline-backend/internal/users"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/logger"
)

func actorFromContext(r *http.Request) (authz.Actor, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return authz.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseSystemRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return authz.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor role")
	}
	return authz.Actor{ID: id, Role: role}, nil
}

// UsersList returns a page of active users, optionally filtered by a
// substring search over username, display name, and email.
func UsersList(svc users.Service, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionRead, nil); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// Passed through verbatim: matching is exact-case substring, and
		// surrounding whitespace is part of the term.
		term := r.URL.Query().Get("search_term")

		page, err := svc.List(r.Context(), term, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// UsersShow returns a single active user.
func UsersShow(svc users.Service, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
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

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionRead, &authz.Target{ID: user.ID, Role: user.SystemRole}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type userCreateRequest struct {
	DisplayName          string `json:"display_name" validate:"required"`
	Username             string `json:"username" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

func (r userCreateRequest) toInput() users.CreateUserInput {
	return users.CreateUserInput{
		DisplayName:          r.DisplayName,
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}

// UsersCreate provisions a new account. Only the create path carries
// credential fields.
func UsersCreate(svc users.Service, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionManage, nil); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload userCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// The update payload is the restricted field set. Unknown fields, password
// included, are rejected by the strict decoder.
type userUpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1"`
	Username    *string `json:"username,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (r userUpdateRequest) toInput() users.UpdateUserInput {
	return users.UpdateUserInput{
		DisplayName: r.DisplayName,
		Username:    r.Username,
		Email:       r.Email,
	}
}

// UsersUpdate adjusts the mutable profile fields of an active user.
func UsersUpdate(svc users.Service, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
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

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionManage, &authz.Target{ID: user.ID, Role: user.SystemRole}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload userUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// UsersDelete soft deletes an active user.
func UsersDelete(svc users.Service, az authz.Authorizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
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

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := az.Can(r.Context(), actor, authz.ActionManage, &authz.Target{ID: user.ID, Role: user.SystemRole}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
