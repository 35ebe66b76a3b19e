package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// UserService owns the validation and mutation rules for back-office users.
type UserService struct {
	accounts accounts[*domain.User]
	users    repository.UserRepository
	notifier Notifier
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo repository.UserRepository
	Hasher   auth.Hasher
	Policy   auth.PasswordPolicy
	Notifier Notifier
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// CreateUserInput describes a new user. Status is optional and defaults to ACTIVE.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Status   domain.UserStatus
}

// UserCreation is the outcome of CreateUser. The user is persisted whenever the
// creation is returned; NotifyErr only records that the post-commit
// notification did not go out.
type UserCreation struct {
	User      *domain.User
	NotifyErr error
}

// Notified reports whether the credentials notification was handed off.
func (c *UserCreation) Notified() bool {
	return c.NotifyErr == nil
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		accounts: newAccounts[*domain.User]("user", deps.UserRepo, deps.Hasher, deps.Policy),
		users:    deps.UserRepo,
		notifier: deps.Notifier,
		logger:   logger,
		metrics:  deps.Metrics,
	}
}

// CreateUser validates, hashes and stores a new user, then notifies the
// credentials channel on a best-effort basis.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserCreation, error) {
	if input.Name == "" {
		return nil, apperrors.NewInvalidInput("user name cannot be empty", map[string]any{"field": "name"})
	}
	if input.Email == "" {
		return nil, apperrors.NewInvalidInput("email cannot be empty", map[string]any{"field": "email"})
	}
	if !input.Role.Assignable() {
		return nil, apperrors.NewInvalidInput("role cannot be null or invalid", map[string]any{"field": "role", "allowed": []domain.Role{domain.RoleAdmin, domain.RoleDriver}})
	}
	status := input.Status
	if status == "" {
		status = domain.UserStatusActive
	}
	if !status.Valid() {
		return nil, invalidStatus()
	}
	if err := s.accounts.checkPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.accounts.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := s.accounts.encode(input.Password)
	if err != nil {
		return nil, err
	}

	saved, err := s.accounts.save(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       status,
	})
	if err != nil {
		return nil, err
	}

	creation := &UserCreation{User: saved}
	creation.NotifyErr = s.notifyCreated(ctx, saved, input.Password)
	if creation.NotifyErr != nil {
		s.metrics.RecordNotificationFailure("user_created")
		s.logger.Warn("user created but credentials notification failed",
			zap.Int64("user_id", saved.ID),
			zap.Error(creation.NotifyErr))
	}
	return creation, nil
}

// notifyCreated runs the post-commit hook. It never panics outward.
func (s *UserService) notifyCreated(ctx context.Context, user *domain.User, plaintext string) (err error) {
	if s.notifier == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return s.notifier.NotifyAccountCreated(ctx, user.ID, user.Email, user.Name, plaintext)
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.accounts.byID(ctx, id); err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return storageError(err)
	}
	return nil
}

// UpdateStatus moves a user between ACTIVE and INACTIVE.
func (s *UserService) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, invalidStatus()
	}
	user, err := s.accounts.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	return s.accounts.save(ctx, user)
}

// GetUsersByRole lists users holding role. Credential hashes are never returned.
func (s *UserService) GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Assignable() {
		return nil, apperrors.NewInvalidInput("invalid role value, only ADMIN or DRIVER are allowed", map[string]any{"field": "role"})
	}
	users, err := s.users.FindByRole(ctx, role)
	if err != nil {
		return nil, storageError(err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetUserByEmail looks a user up by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.accounts.byEmail(ctx, email)
}

// GetUserByID looks a user up by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.accounts.byID(ctx, id)
}

// UpdatePassword changes a user's password after verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, id int64, change domain.PasswordChange) (*domain.User, error) {
	return s.accounts.changePassword(ctx, id, change)
}

// ResetPassword replaces a user's password without checking the current one.
func (s *UserService) ResetPassword(ctx context.Context, id int64, newPassword string) (*domain.User, error) {
	return s.accounts.resetPassword(ctx, id, newPassword)
}

func invalidStatus() error {
	return apperrors.NewInvalidInput("invalid status value, only ACTIVE or INACTIVE are allowed", map[string]any{"field": "status"})
}
