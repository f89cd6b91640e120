package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sidelinehq/sideline-backend/internal/auth"
	"github.com/sidelinehq/sideline-backend/internal/authz"
	"github.com/sidelinehq/sideline-backend/internal/masquerade"
	"github.com/sidelinehq/sideline-backend/internal/memberships"
	"github.com/sidelinehq/sideline-backend/internal/users"
	pkgAuth "github.com/sidelinehq/sideline-backend/pkg/auth"
	"github.com/sidelinehq/sideline-backend/pkg/config"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest, string) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

type stubUserService struct {
	user *users.UserDTO
}

func (s stubUserService) List(context.Context, string, pagination.Params) (*pagination.Page, error) {
	return pagination.NewPage([]*users.UserDTO{s.user}, pagination.Params{Page: 1, PerPage: 25}, 1), nil
}

func (s stubUserService) Get(context.Context, uuid.UUID) (*users.UserDTO, error) {
	if s.user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.user, nil
}

func (s stubUserService) Create(context.Context, users.CreateUserInput) (*users.UserDTO, error) {
	return s.user, nil
}

func (s stubUserService) Update(context.Context, uuid.UUID, users.UpdateUserInput) (*users.UserDTO, error) {
	return s.user, nil
}

func (s stubUserService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubLister struct{}

func (stubLister) ListActiveForUser(context.Context, uuid.UUID, bool) ([]memberships.MembershipDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, RootPath: "/"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func testRouter(t *testing.T, target *users.UserDTO) http.Handler {
	t.Helper()

	mgr, err := masquerade.NewManager(config.MasqueradeConfig{
		CookieName:   "sideline_masquerade_user",
		HashKey:      "0123456789abcdef0123456789abcdef",
		CookieMaxAge: time.Hour,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	return NewRouter(RouterParams{
		Config:      testConfig(),
		DB:          stubPinger{},
		Sessions:    stubSessions{},
		AuthService: stubAuthService{},
		UserService: stubUserService{user: target},
		Memberships: stubLister{},
		Authorizer:  authz.NewRolePolicy(),
		Masquerade:  mgr,
		Registry:    prometheus.NewRegistry(),
	})
}

func bearerToken(t *testing.T, role enums.SystemRole) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     role,
		JTI:      uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterUsersRequiresAuth(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRouterUsersListAuthenticated(t *testing.T) {
	target := &users.UserDTO{ID: uuid.New(), Username: "alice", SystemRole: enums.SystemRoleMember}
	router := testRouter(t, target)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, enums.SystemRoleMember))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterMasqueradeRoundTrip(t *testing.T) {
	target := &users.UserDTO{ID: uuid.New(), Username: "alice", SystemRole: enums.SystemRoleMember}
	router := testRouter(t, target)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+target.ID.String()+"/masquerade", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, enums.SystemRoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d: %s", rec.Code, rec.Body.String())
	}

	var markerCookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sideline_masquerade_user" {
			markerCookie = c.Value
		}
	}
	if markerCookie == "" {
		t.Fatal("expected masquerade cookie")
	}
	if strings.Contains(markerCookie, target.ID.String()) {
		t.Fatal("marker must not carry the raw id")
	}

	stop := httptest.NewRequest(http.MethodDelete, "/api/v1/masquerade", nil)
	stop.Header.Set("Authorization", "Bearer "+bearerToken(t, enums.SystemRoleAdmin))
	stopRec := httptest.NewRecorder()
	router.ServeHTTP(stopRec, stop)

	if stopRec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", stopRec.Code)
	}
}
