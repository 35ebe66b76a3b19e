package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

type passengerServiceFixtures struct {
	service    *PassengerService
	repo       *fakePassengerRepo
	dispatcher events.Dispatcher
}

func createTestPassengerService(seed ...domain.Passenger) passengerServiceFixtures {
	repo := newFakePassengerRepo(seed...)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewPassengerService(PassengerDependencies{
		PassengerRepo: repo,
		Hasher:        testHasher(),
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
	})
	return passengerServiceFixtures{service: svc, repo: repo, dispatcher: dispatcher}
}

func storedPassenger(id int64, email, password string) domain.Passenger {
	return domain.Passenger{ID: id, Name: "Ana", Email: email, PasswordHash: mustHash(password)}
}

func strPtr(s string) *string { return &s }

func TestPassengerService_CreatePassenger_Success(t *testing.T) {
	fx := createTestPassengerService()

	var seen []events.Event
	fx.dispatcher.Subscribe(events.EventPassengerCreated, func(_ context.Context, e events.Event) error {
		seen = append(seen, e)
		return nil
	})

	passenger, err := fx.service.CreatePassenger(context.Background(), CreatePassengerInput{Name: "Ana", Email: "ana@x.com", Password: "Passw0rd"})

	require.NoError(t, err)
	assert.NotZero(t, passenger.ID)
	assert.True(t, testHasher().Matches("Passw0rd", fx.repo.passengers[passenger.ID].PasswordHash))

	require.Len(t, seen, 1)
	assert.Equal(t, passenger.ID, seen[0].AccountID)
	assert.Equal(t, events.PassengerCreatedPayload{Email: "ana@x.com", Name: "Ana"}, seen[0].Payload)
}

func TestPassengerService_CreatePassenger_EventFailureIsNotFatal(t *testing.T) {
	fx := createTestPassengerService()
	fx.dispatcher.Subscribe(events.EventPassengerCreated, func(context.Context, events.Event) error {
		return errStoreDown
	})

	passenger, err := fx.service.CreatePassenger(context.Background(), CreatePassengerInput{Name: "Ana", Email: "ana@x.com", Password: "Passw0rd"})

	require.NoError(t, err)
	assert.Len(t, fx.repo.passengers, 1)
	assert.NotNil(t, passenger)
}

func TestPassengerService_CreatePassenger_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		input CreatePassengerInput
		code  string
	}{
		{"empty name", CreatePassengerInput{Email: "ana@x.com", Password: "Passw0rd"}, apperrors.CodeInvalidInput},
		{"empty email", CreatePassengerInput{Name: "Ana", Password: "Passw0rd"}, apperrors.CodeInvalidInput},
		{"weak password", CreatePassengerInput{Name: "Ana", Email: "ana@x.com", Password: "PASSWORD1"}, apperrors.CodePolicyViolation},
		{"taken email", CreatePassengerInput{Name: "Ana", Email: "taken@x.com", Password: "Passw0rd"}, apperrors.CodeConflict},
		{"weak password wins over taken email", CreatePassengerInput{Name: "Ana", Email: "taken@x.com", Password: "weak"}, apperrors.CodePolicyViolation},
		{"password over bcrypt limit", CreatePassengerInput{Name: "Ana", Email: "ana@x.com", Password: "Passw0rd" + strings.Repeat("x", 70)}, apperrors.CodePolicyViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestPassengerService(storedPassenger(1, "taken@x.com", "Passw0rd"))

			_, err := fx.service.CreatePassenger(context.Background(), tc.input)

			assert.Equal(t, tc.code, apperrors.CodeOf(err))
			assert.Zero(t, fx.repo.count("Save"))
		})
	}
}

func TestPassengerService_UpdatePassenger_RejectsPassword(t *testing.T) {
	patches := []domain.PassengerPatch{
		{ID: 1, Password: strPtr("NewPassw0rd")},
		{ID: 1, Password: strPtr("")},
		{ID: 1, Name: strPtr("Ana María"), Email: strPtr("new@x.com"), Password: strPtr("x")},
		{ID: 99, Password: strPtr("NewPassw0rd")},
	}

	for _, patch := range patches {
		fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))

		_, err := fx.service.UpdatePassenger(context.Background(), patch)

		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
		assert.Zero(t, fx.repo.total(), "password patches must be rejected before any repository call")
	}
}

func TestPassengerService_UpdatePassenger_AppliesPatch(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))
	hashBefore := fx.repo.passengers[1].PasswordHash

	updated, err := fx.service.UpdatePassenger(context.Background(), domain.PassengerPatch{ID: 1, Name: strPtr("Ana María"), Email: strPtr("ana.maria@x.com")})

	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "ana.maria@x.com", updated.Email)
	assert.Equal(t, hashBefore, fx.repo.passengers[1].PasswordHash)
}

func TestPassengerService_UpdatePassenger_EmptyFieldsAreIgnored(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))

	updated, err := fx.service.UpdatePassenger(context.Background(), domain.PassengerPatch{ID: 1, Name: strPtr(""), Email: nil})

	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@x.com", updated.Email)
}

func TestPassengerService_UpdatePassenger_SameEmailIsNotAConflict(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))

	_, err := fx.service.UpdatePassenger(context.Background(), domain.PassengerPatch{ID: 1, Email: strPtr("ana@x.com")})

	require.NoError(t, err)
	assert.Zero(t, fx.repo.count("ExistsByEmail"))
}

func TestPassengerService_UpdatePassenger_Conflict(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"), storedPassenger(2, "bea@x.com", "Passw0rd"))

	_, err := fx.service.UpdatePassenger(context.Background(), domain.PassengerPatch{ID: 1, Email: strPtr("bea@x.com")})

	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	assert.Zero(t, fx.repo.count("Save"))
}

func TestPassengerService_UpdatePassenger_NotFound(t *testing.T) {
	fx := createTestPassengerService()

	_, err := fx.service.UpdatePassenger(context.Background(), domain.PassengerPatch{ID: 5, Name: strPtr("Ana")})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestPassengerService_PasswordFlows(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))

	_, err := fx.service.UpdatePassword(context.Background(), 1, domain.PasswordChange{Current: "Passw0rd", New: "weak"})
	assert.Equal(t, apperrors.CodePolicyViolation, apperrors.CodeOf(err))
	assert.Zero(t, fx.repo.count("Save"))

	tooLong := "Passw0rd" + strings.Repeat("x", 70)
	_, err = fx.service.UpdatePassword(context.Background(), 1, domain.PasswordChange{Current: "Passw0rd", New: tooLong})
	assert.Equal(t, apperrors.CodePolicyViolation, apperrors.CodeOf(err))
	_, err = fx.service.ResetPassword(context.Background(), 1, tooLong)
	assert.Equal(t, apperrors.CodePolicyViolation, apperrors.CodeOf(err))
	assert.Zero(t, fx.repo.count("Save"))

	_, err = fx.service.UpdatePassword(context.Background(), 1, domain.PasswordChange{Current: "nope", New: "NewPassw0rd"})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))

	updated, err := fx.service.UpdatePassword(context.Background(), 1, domain.PasswordChange{Current: "Passw0rd", New: "NewPassw0rd"})
	require.NoError(t, err)
	assert.True(t, testHasher().Matches("NewPassw0rd", updated.PasswordHash))

	reset, err := fx.service.ResetPassword(context.Background(), 1, "An0therOne")
	require.NoError(t, err)
	assert.True(t, testHasher().Matches("An0therOne", reset.PasswordHash))

	_, err = fx.service.ResetPassword(context.Background(), 2, "An0therOne")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestPassengerService_GetPassengerByEmail(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"))

	passenger, err := fx.service.GetPassengerByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), passenger.ID)

	_, err = fx.service.GetPassengerByEmail(context.Background(), "bea@x.com")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestPassengerService_CountPassengers(t *testing.T) {
	fx := createTestPassengerService(storedPassenger(1, "ana@x.com", "Passw0rd"), storedPassenger(2, "bea@x.com", "Passw0rd"))

	count, err := fx.service.CountPassengers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	fx.repo.err = errStoreDown
	_, err = fx.service.CountPassengers(context.Background())
	assert.Equal(t, apperrors.CodeStorage, apperrors.CodeOf(err))
}

func TestNotificationService_NotifyAccountCreated(t *testing.T) {
	publisher := &fakePublisher{}
	n := NewNotificationService(nil, publisher, zap.NewNop(), config.NotificationConfig{Enabled: true})

	require.NoError(t, n.NotifyAccountCreated(context.Background(), 3, "c@x.com", "Carlos", "Passw0rd"))

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, events.EventUserCreated, event.Type)
	assert.Equal(t, int64(3), event.AccountID)
	assert.Equal(t, events.UserCreatedPayload{Email: "c@x.com", Username: "Carlos", Password: "Passw0rd"}, event.Payload)
}

func TestNotificationService_PublisherErrorPropagates(t *testing.T) {
	publisher := &fakePublisher{err: errStoreDown}
	n := NewNotificationService(nil, publisher, zap.NewNop(), config.NotificationConfig{Enabled: true})

	assert.ErrorIs(t, n.NotifyAccountCreated(context.Background(), 3, "c@x.com", "Carlos", "Passw0rd"), errStoreDown)
}

func TestNotificationService_DisabledIsStub(t *testing.T) {
	publisher := &fakePublisher{}
	n := NewNotificationService(nil, publisher, zap.NewNop(), config.NotificationConfig{Enabled: false})

	require.NoError(t, n.NotifyAccountCreated(context.Background(), 3, "c@x.com", "Carlos", "Passw0rd"))
	assert.Empty(t, publisher.published)

	require.NoError(t, NewNotificationService(nil, nil, nil, config.NotificationConfig{Enabled: true}).
		NotifyAccountCreated(context.Background(), 3, "c@x.com", "Carlos", "Passw0rd"))
}

func TestNotificationService_ForwardsPassengerEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{}
	n := NewNotificationService(dispatcher, publisher, zap.NewNop(), config.NotificationConfig{Enabled: true})
	n.RegisterHandlers()

	svc := NewPassengerService(PassengerDependencies{
		PassengerRepo: newFakePassengerRepo(),
		Hasher:        testHasher(),
		Dispatcher:    dispatcher,
	})
	_, err := svc.CreatePassenger(context.Background(), CreatePassengerInput{Name: "Ana", Email: "ana@x.com", Password: "Passw0rd"})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.EventPassengerCreated, publisher.published[0].Type)
}
