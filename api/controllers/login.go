package controllers

import (
	"net/http"

	"github.com/sidelinehq/sideline-backend/api/responses"
	"github.com/sidelinehq/sideline-backend/api/validators"
	"github.com/sidelinehq/sideline-backend/internal/auth"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/logger"
)

// Login exchanges credentials for an access token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload, r.UserAgent())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
