package users

import (
	"context"
	"errors"
	"time"

	"github.com/Ryan-53/registration-and-payment-api/internal/notification"
	"github.com/Ryan-53/registration-and-payment-api/internal/validation"
)

// Service runs the registration pipeline: field validation in a fixed
// order, then a single store append. Failed validation never touches
// the store.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService builds a registration service.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// RegisterInput carries a registration request. CreditCardNumber is nil
// when the field was not supplied.
type RegisterInput struct {
	Username         string
	Password         string
	Email            string
	DateOfBirth      string
	CreditCardNumber *string
}

// Register validates the input and stores the user. Validators run in a
// fixed order (username, password, email, date of birth, then the
// optional card number) and the first violation is returned unchanged.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	taken := func(username string) bool {
		exists, err := s.repo.Exists(ctx, username)
		return err == nil && exists
	}

	// The evaluation order is the contract: a multiply-invalid input
	// reports the earliest rule it breaks.
	checks := []func() *validation.Error{
		func() *validation.Error { return validation.Username(input.Username, taken) },
		func() *validation.Error { return validation.Password(input.Password) },
		func() *validation.Error { return validation.Email(input.Email) },
		func() *validation.Error { return validation.DateOfBirth(input.DateOfBirth, time.Now()) },
	}
	for _, check := range checks {
		if verr := check(); verr != nil {
			return User{}, verr
		}
	}

	if input.CreditCardNumber != nil {
		if verr := validation.Number(*input.CreditCardNumber, 16); verr != nil {
			return User{}, verr
		}
	}

	user := User{
		Username:         input.Username,
		Password:         input.Password,
		Email:            input.Email,
		DateOfBirth:      input.DateOfBirth,
		CreditCardNumber: input.CreditCardNumber,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// A registration that raced past the uniqueness validator still
		// loses at the store; report it as the same conflict.
		if errors.Is(err, ErrUsernameTaken) {
			return User{}, validation.Conflict("Username already taken.")
		}
		return User{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindUserRegistered,
			Destination: user.Email,
			Body:        "Welcome " + user.Username,
		})
	}

	return user, nil
}

// List returns stored users matching the filter, in insertion order.
// Listing is read-only.
func (s *Service) List(ctx context.Context, filter CardFilter) ([]User, error) {
	return s.repo.List(ctx, filter)
}
