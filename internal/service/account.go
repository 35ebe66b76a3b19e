package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

const weakPasswordMessage = "password must contain at least 8 characters and at most 72 bytes, including uppercase letters, lowercase letters and numbers"

// credentialed is the capability set shared by every account type: an identity,
// a unique email and a policy-checked password.
type credentialed interface {
	AccountID() int64
	AccountEmail() string
	CredentialHash() string
	SetCredentialHash(hash string)
}

// accountStore is the repository surface the shared account rules need.
type accountStore[T credentialed] interface {
	Save(ctx context.Context, account T) (T, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (T, error)
	FindByEmail(ctx context.Context, email string) (T, error)
}

// accounts holds the validation and password rules common to users and passengers.
type accounts[T credentialed] struct {
	label  string
	store  accountStore[T]
	hasher auth.Hasher
	policy auth.PasswordPolicy
}

func newAccounts[T credentialed](label string, store accountStore[T], hasher auth.Hasher, policy auth.PasswordPolicy) accounts[T] {
	if policy == nil {
		policy = auth.NewPasswordPolicy()
	}
	return accounts[T]{label: label, store: store, hasher: hasher, policy: policy}
}

func (a accounts[T]) byID(ctx context.Context, id int64) (T, error) {
	account, err := a.store.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, a.lookupError(err, map[string]any{"id": id})
	}
	return account, nil
}

func (a accounts[T]) byEmail(ctx context.Context, email string) (T, error) {
	account, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		var zero T
		return zero, a.lookupError(err, map[string]any{"email": email})
	}
	return account, nil
}

func (a accounts[T]) lookupError(err error, details map[string]any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(a.label, details)
	}
	return storageError(err)
}

func (a accounts[T]) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := a.store.ExistsByEmail(ctx, email)
	if err != nil {
		return storageError(err)
	}
	if exists {
		return apperrors.NewConflict("email is already in use", map[string]any{"email": email})
	}
	return nil
}

// checkPassword applies the strength policy to a password about to be stored.
func (a accounts[T]) checkPassword(password string) error {
	if !a.policy.IsValid(password) {
		return apperrors.NewPolicyViolation(weakPasswordMessage)
	}
	return nil
}

func (a accounts[T]) encode(password string) (string, error) {
	hash, err := a.hasher.Encode(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewPolicyViolation(weakPasswordMessage)
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

// hashNew validates a replacement password and returns its hash.
func (a accounts[T]) hashNew(newPassword string) (string, error) {
	if newPassword == "" {
		return "", apperrors.NewInvalidInput("new password cannot be empty", map[string]any{"field": "new_password"})
	}
	if err := a.checkPassword(newPassword); err != nil {
		return "", err
	}
	return a.encode(newPassword)
}

func (a accounts[T]) save(ctx context.Context, account T) (T, error) {
	saved, err := a.store.Save(ctx, account)
	if err == nil {
		return saved, nil
	}

	var zero T
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return zero, apperrors.NewConflict("email is already in use", map[string]any{"email": account.AccountEmail()})
	case errors.Is(err, repository.ErrNotFound):
		return zero, apperrors.NewNotFound(a.label, map[string]any{"id": account.AccountID()})
	default:
		return zero, apperrors.NewStorageError(err)
	}
}

// changePassword verifies the current password before storing the new one.
func (a accounts[T]) changePassword(ctx context.Context, id int64, change domain.PasswordChange) (T, error) {
	var zero T

	account, err := a.byID(ctx, id)
	if err != nil {
		return zero, err
	}
	if change.Current == "" {
		return zero, apperrors.NewInvalidInput("current password cannot be empty", map[string]any{"field": "current_password"})
	}
	if !a.hasher.Matches(change.Current, account.CredentialHash()) {
		return zero, apperrors.NewInvalidInput("current password is incorrect", map[string]any{"field": "current_password"})
	}

	hash, err := a.hashNew(change.New)
	if err != nil {
		return zero, err
	}
	account.SetCredentialHash(hash)
	return a.save(ctx, account)
}

// resetPassword is the administrative variant: no current-password check.
func (a accounts[T]) resetPassword(ctx context.Context, id int64, newPassword string) (T, error) {
	var zero T

	account, err := a.byID(ctx, id)
	if err != nil {
		return zero, err
	}
	hash, err := a.hashNew(newPassword)
	if err != nil {
		return zero, err
	}
	account.SetCredentialHash(hash)
	return a.save(ctx, account)
}

// storageError classifies repository failures that are not lookups.
func storageError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.NewConflict("email is already in use", nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("account", nil)
	default:
		return apperrors.NewStorageError(err)
	}
}
