package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/config"
	"github.com/sidelinehq/sideline-backend/pkg/db"
	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
	"github.com/sidelinehq/sideline-backend/pkg/pagination"
	"github.com/sidelinehq/sideline-backend/pkg/security"
)

type usersRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListActive(ctx context.Context, term string, limit, offset int) ([]models.User, error)
	CountActive(ctx context.Context, term string) (int64, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, user *models.User) error
}

// Service exposes user account operations.
type Service interface {
	List(ctx context.Context, term string, params pagination.Params) (*pagination.Page, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        usersRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a users service with the provided repository.
func NewService(repo usersRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func validateCreate(input CreateUserInput) map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(input.DisplayName) == "" {
		details["display_name"] = "can't be blank"
	}
	if strings.TrimSpace(input.Username) == "" {
		details["username"] = "can't be blank"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "can't be blank"
	}
	if input.Password == "" {
		details["password"] = "can't be blank"
	} else if input.Password != input.PasswordConfirmation {
		details["password_confirmation"] = "doesn't match password"
	}
	return details
}

// translateUnique maps a database uniqueness violation to the field-level
// validation error the write paths surface. Anything else passes through.
func translateUnique(err error, op string) error {
	if !db.IsUniqueViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
	}
	column, ok := db.UniqueViolationColumn(err)
	if !ok {
		column = "username"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{column: "is already taken"})
}

func (s *service) List(ctx context.Context, term string, params pagination.Params) (*pagination.Page, error) {
	params = params.Normalize()

	total, err := s.repo.CountActive(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}

	rows, err := s.repo.ListActive(ctx, term, params.PerPage, params.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	results := make([]*UserDTO, 0, len(rows))
	for i := range rows {
		results = append(results, FromModel(&rows[i]))
	}
	return pagination.NewPage(results, params, total), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if details := validateCreate(input); len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateUnique(err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	details := map[string]string{}
	if input.DisplayName != nil {
		value := strings.TrimSpace(*input.DisplayName)
		if value == "" {
			details["display_name"] = "can't be blank"
		}
		user.DisplayName = value
	}
	if input.Username != nil {
		value := strings.TrimSpace(*input.Username)
		if value == "" {
			details["username"] = "can't be blank"
		}
		user.Username = value
	}
	if input.Email != nil {
		value := strings.TrimSpace(*input.Email)
		if value == "" {
			details["email"] = "can't be blank"
		}
		user.Email = value
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, translateUnique(err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if err := s.repo.SoftDelete(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}
