package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/pkg/logger"
)

// MarkerReader reads the masquerade marker from a request. Invalid markers
// read as absent.
type MarkerReader interface {
	Current(r *http.Request) (uuid.UUID, bool)
}

// Masquerade surfaces a valid masquerade marker in the request context. The
// authenticated actor keeps their own identity; handlers that present data
// "as" the target read the marker explicitly.
func Masquerade(reader MarkerReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reader == nil {
				next.ServeHTTP(w, r)
				return
			}

			targetID, ok := reader.Current(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithMasqueradeUserID(r.Context(), targetID.String())
			if logg != nil {
				ctx = logg.WithMasqueradeUserID(ctx, targetID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
