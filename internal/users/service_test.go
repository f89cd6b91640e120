package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/config"
	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/pagination"
)

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

type stubUsersRepo struct {
	user      *models.User
	users     []models.User
	total     int64
	findErr   error
	createErr error
	updateErr error
	deleteErr error
	listErr   error
	countErr  error

	created *models.User
	updated *models.User
	deleted *models.User
}

func (s *stubUsersRepo) FindActiveByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

func (s *stubUsersRepo) ListActive(_ context.Context, _ string, _, _ int) ([]models.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.users, nil
}

func (s *stubUsersRepo) CountActive(_ context.Context, _ string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

func (s *stubUsersRepo) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = user
	return nil
}

func (s *stubUsersRepo) Update(_ context.Context, user *models.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = user
	return nil
}

func (s *stubUsersRepo) SoftDelete(_ context.Context, user *models.User) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = user
	return nil
}

func baseUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		PasswordHash: "x",
		SystemRole:   enums.SystemRoleMember,
		State:        enums.UserStateActive,
	}
}

func detailsMap(t *testing.T, err error) map[string]string {
	t.Helper()

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	return details
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, testPasswordCfg())
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetSuccess(t *testing.T) {
	user := baseUser()
	svc, err := NewService(&stubUsersRepo{user: user}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if dto.ID != user.ID {
		t.Fatalf("expected id %s got %s", user.ID, dto.ID)
	}
	if dto.Username != "alice" {
		t.Fatalf("expected username alice got %s", dto.Username)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{findErr: gorm.ErrRecordNotFound}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetDependencyError(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{findErr: errors.New("boom")}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
}

func TestServiceListBuildsPage(t *testing.T) {
	repo := &stubUsersRepo{users: []models.User{*baseUser(), *baseUser()}, total: 60}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	page, err := svc.List(context.Background(), "", pagination.Params{Page: 2, PerPage: 25})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if page.Page != 2 || page.PerPage != 25 {
		t.Fatalf("unexpected paging: %+v", page)
	}
	if page.TotalEntries != 60 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	results, ok := page.Results.([]*UserDTO)
	if !ok {
		t.Fatalf("expected []*UserDTO results, got %T", page.Results)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubUsersRepo{}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateUserInput{
		DisplayName:          "Alice",
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "sup3r-secret",
		PasswordConfirmation: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if dto.Username != "alice" {
		t.Fatalf("expected username alice got %s", dto.Username)
	}
	if repo.created == nil {
		t.Fatal("expected repo create call")
	}
	if repo.created.PasswordHash == "" || repo.created.PasswordHash == "sup3r-secret" {
		t.Fatalf("expected hashed password, got %q", repo.created.PasswordHash)
	}
	if !strings.HasPrefix(repo.created.PasswordHash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", repo.created.PasswordHash)
	}
}

func TestServiceCreateBlankFields(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateUserInput{})
	details := detailsMap(t, gotErr)
	for _, field := range []string{"display_name", "username", "email", "password"} {
		if details[field] != "can't be blank" {
			t.Fatalf("expected blank message for %s, got %q", field, details[field])
		}
	}
}

func TestServiceCreateConfirmationMismatch(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateUserInput{
		DisplayName:          "Alice",
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "sup3r-secret",
		PasswordConfirmation: "different",
	})
	details := detailsMap(t, gotErr)
	if details["password_confirmation"] != "doesn't match password" {
		t.Fatalf("expected confirmation message, got %q", details["password_confirmation"])
	}
}

func TestServiceCreateUsernameTaken(t *testing.T) {
	repo := &stubUsersRepo{createErr: errors.New("UNIQUE constraint failed: users.username")}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateUserInput{
		DisplayName:          "Alice",
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "sup3r-secret",
		PasswordConfirmation: "sup3r-secret",
	})
	details := detailsMap(t, gotErr)
	if details["username"] != "is already taken" {
		t.Fatalf("expected taken message, got %q", details["username"])
	}
}

func TestServiceUpdateAppliesRestrictedFields(t *testing.T) {
	user := baseUser()
	repo := &stubUsersRepo{user: user}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	name := "Alice B."
	email := "aliceb@example.com"
	dto, err := svc.Update(context.Background(), user.ID, UpdateUserInput{
		DisplayName: &name,
		Email:       &email,
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if dto.DisplayName != name || dto.Email != email {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Username != "alice" {
		t.Fatalf("expected untouched username, got %s", dto.Username)
	}
	if repo.updated == nil {
		t.Fatal("expected repo update call")
	}
	if repo.updated.PasswordHash != "x" {
		t.Fatalf("expected untouched password hash, got %q", repo.updated.PasswordHash)
	}
}

func TestServiceUpdateBlankField(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{user: baseUser()}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	blank := "  "
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateUserInput{Username: &blank})
	details := detailsMap(t, gotErr)
	if details["username"] != "can't be blank" {
		t.Fatalf("expected blank message, got %q", details["username"])
	}
}

func TestServiceUpdateEmailTaken(t *testing.T) {
	repo := &stubUsersRepo{
		user:      baseUser(),
		updateErr: errors.New("UNIQUE constraint failed: users.email"),
	}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	email := "taken@example.com"
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateUserInput{Email: &email})
	details := detailsMap(t, gotErr)
	if details["email"] != "is already taken" {
		t.Fatalf("expected taken message, got %q", details["email"])
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{findErr: gorm.ErrRecordNotFound}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	name := "Alice B."
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateUserInput{DisplayName: &name})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceDeleteSuccess(t *testing.T) {
	user := baseUser()
	repo := &stubUsersRepo{user: user}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if repo.deleted == nil || repo.deleted.ID != user.ID {
		t.Fatal("expected soft delete call")
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{findErr: gorm.ErrRecordNotFound}, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}
