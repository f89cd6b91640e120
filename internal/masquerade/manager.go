package masquerade

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/sidelinehq/sideline-backend/pkg/config"
)

// Manager owns the signed cookie that marks a masquerade session. The marker
// carries only the target user id; the admin's own identity always comes
// from their bearer token. Tampered or unparseable markers read as absent.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager builds a manager from the masquerade cookie settings.
func NewManager(cfg config.MasqueradeConfig) (*Manager, error) {
	if cfg.HashKey == "" {
		return nil, fmt.Errorf("masquerade hash key required")
	}
	if cfg.CookieName == "" {
		return nil, fmt.Errorf("masquerade cookie name required")
	}

	maxAge := int(cfg.CookieMaxAge.Seconds())
	codec := securecookie.New([]byte(cfg.HashKey), nil)
	codec.MaxAge(maxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     maxAge,
		secure:     cfg.CookieSecure,
	}, nil
}

// Start writes the marker for the given target user.
func (m *Manager) Start(w http.ResponseWriter, targetID uuid.UUID) error {
	if m == nil {
		return fmt.Errorf("masquerade manager not configured")
	}

	encoded, err := m.codec.Encode(m.cookieName, targetID.String())
	if err != nil {
		return fmt.Errorf("encode masquerade cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Stop clears the marker. Safe to call when no marker is present.
func (m *Manager) Stop(w http.ResponseWriter) {
	if m == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current reads the marker from the request. A missing, expired, tampered,
// or malformed cookie returns false, as does a nil manager.
func (m *Manager) Current(r *http.Request) (uuid.UUID, bool) {
	if m == nil {
		return uuid.Nil, false
	}

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return uuid.Nil, false
	}

	var raw string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &raw); err != nil {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
