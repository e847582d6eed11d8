package users

import (
	"context"
	"errors"
)

// ErrUsernameTaken is returned by Create when the username is already
// registered.
var ErrUsernameTaken = errors.New("username already taken")

// ErrCardNotRegistered is returned by FindByCardNumber when no user
// holds the card.
var ErrCardNotRegistered = errors.New("credit card number not registered")

// Repository stores registered users. The store owns uniqueness of
// usernames and preserves insertion order for listing.
type Repository interface {
	Create(ctx context.Context, user User) error
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, filter CardFilter) ([]User, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (User, error)
}
