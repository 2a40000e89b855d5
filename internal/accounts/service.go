// Package accounts covers account administration: first-time setup, account
// creation and deletion, and password changes. Every precondition (password
// policy, confirmation match) is checked client-side so invalid input never
// produces a network call.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/models"
	"github.com/lesvieux/portal/internal/shared"
)

const (
	listRetryAttempts = 2
	listRetryBase     = 100 * time.Millisecond
)

// CreateAccountRequest is the typed payload behind the "create account"
// panel. ConfirmPassword is checked here; only username and password travel.
type CreateAccountRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// ChangePasswordRequest is the typed payload behind the admin "change
// password" panel, keyed by the target account.
type ChangePasswordRequest struct {
	AccountID       int64
	Password        string
	ConfirmPassword string
}

// setupLatch is the slice of the session manager this service needs: the
// explicit "an account now exists" signal that retires first-setup screens.
type setupLatch interface {
	MarkFirstAccountCreated()
}

type Service struct {
	client api.Client
	latch  setupLatch
	log    logging.Logger
}

func NewService(client api.Client, latch setupLatch, log logging.Logger) *Service {
	return &Service{client: client, latch: latch, log: log}
}

func validateCreate(req CreateAccountRequest) error {
	if req.Username == "" {
		return shared.NewValidationError("username not provided")
	}
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return shared.NewValidationError("passwords do not match")
	}
	return nil
}

// CreateFirst creates the platform's very first account. It is only valid
// while the status probe reports uninitialized, and it latches the session's
// first-account flag so setup screens become unreachable afterwards.
func (s *Service) CreateFirst(ctx context.Context, req CreateAccountRequest) (int64, error) {
	if err := validateCreate(req); err != nil {
		return 0, err
	}
	id, err := s.client.CreateFirstAccount(ctx, req.Username, req.Password)
	if err != nil {
		return 0, err
	}
	s.latch.MarkFirstAccountCreated()
	s.log.Info(ctx, "created first account", "id", id)
	return id, nil
}

// Create adds an account on behalf of an admin.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (int64, error) {
	if err := validateCreate(req); err != nil {
		return 0, err
	}
	id, err := s.client.CreateAccount(ctx, req.Username, req.Password)
	if err != nil {
		return 0, err
	}
	s.latch.MarkFirstAccountCreated()
	return id, nil
}

// List returns all accounts (admin view). Like other reads it retries on
// transient failure, never on an auth failure.
func (s *Service) List(ctx context.Context) ([]models.AccountEntry, error) {
	var entries []models.AccountEntry
	backoff := retry.WithMaxRetries(listRetryAttempts, retry.NewFibonacci(listRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		entries, err = s.client.ListAccounts(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes an account permanently (admin only).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.DeleteAccount(ctx, id)
}

// ChangeMyPassword updates the caller's own password.
func (s *Service) ChangeMyPassword(ctx context.Context, password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return shared.NewValidationError("passwords do not match")
	}
	return s.client.ChangeMyPassword(ctx, password)
}

// ChangePassword updates another account's password (admin only).
func (s *Service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return shared.NewValidationError("passwords do not match")
	}
	return s.client.ChangePassword(ctx, req.AccountID, req.Password)
}
