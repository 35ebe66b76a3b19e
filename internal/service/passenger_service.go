package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// PassengerService owns the validation and mutation rules for passengers.
type PassengerService struct {
	accounts   accounts[*domain.Passenger]
	passengers repository.PassengerRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PassengerDependencies bundles collaborators for the passenger service.
type PassengerDependencies struct {
	PassengerRepo repository.PassengerRepository
	Hasher        auth.Hasher
	Policy        auth.PasswordPolicy
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// CreatePassengerInput describes a new passenger.
type CreatePassengerInput struct {
	Name     string
	Email    string
	Password string
}

// NewPassengerService constructs the service.
func NewPassengerService(deps PassengerDependencies) *PassengerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PassengerService{
		accounts:   newAccounts[*domain.Passenger]("passenger", deps.PassengerRepo, deps.Hasher, deps.Policy),
		passengers: deps.PassengerRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreatePassenger validates, hashes and stores a new passenger.
func (s *PassengerService) CreatePassenger(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	if input.Name == "" {
		return nil, apperrors.NewInvalidInput("name cannot be empty", map[string]any{"field": "name"})
	}
	if input.Email == "" {
		return nil, apperrors.NewInvalidInput("email cannot be empty", map[string]any{"field": "email"})
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

	saved, err := s.accounts.save(ctx, &domain.Passenger{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.emitCreated(ctx, saved)
	return saved, nil
}

// emitCreated publishes the audit event. Failures are logged and dropped.
func (s *PassengerService) emitCreated(ctx context.Context, passenger *domain.Passenger) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventPassengerCreated, events.AccountKindPassenger, passenger.ID, events.PassengerCreatedPayload{
		Email: passenger.Email,
		Name:  passenger.Name,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("passenger created but event publication failed",
			zap.Int64("passenger_id", passenger.ID),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

// UpdatePassenger applies a profile patch. Passwords are rejected here and must
// go through UpdatePassword or ResetPassword.
func (s *PassengerService) UpdatePassenger(ctx context.Context, patch domain.PassengerPatch) (*domain.Passenger, error) {
	if patch.Password != nil {
		return nil, apperrors.NewInvalidInput("password cannot be updated here", map[string]any{"field": "password"})
	}

	passenger, err := s.accounts.byID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != "" {
		passenger.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != "" && *patch.Email != passenger.Email {
		if err := s.accounts.ensureEmailFree(ctx, *patch.Email); err != nil {
			return nil, err
		}
		passenger.Email = *patch.Email
	}

	return s.accounts.save(ctx, passenger)
}

// UpdatePassword changes a passenger's password after verifying the current one.
func (s *PassengerService) UpdatePassword(ctx context.Context, id int64, change domain.PasswordChange) (*domain.Passenger, error) {
	return s.accounts.changePassword(ctx, id, change)
}

// ResetPassword replaces a passenger's password without checking the current one.
func (s *PassengerService) ResetPassword(ctx context.Context, id int64, newPassword string) (*domain.Passenger, error) {
	return s.accounts.resetPassword(ctx, id, newPassword)
}

// GetPassengerByEmail looks a passenger up by email.
func (s *PassengerService) GetPassengerByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	return s.accounts.byEmail(ctx, email)
}

// CountPassengers returns the number of stored passengers.
func (s *PassengerService) CountPassengers(ctx context.Context) (int64, error) {
	count, err := s.passengers.Count(ctx)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}
