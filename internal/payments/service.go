package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryan-53/registration-and-payment-api/internal/notification"
	"github.com/Ryan-53/registration-and-payment-api/internal/users"
	"github.com/Ryan-53/registration-and-payment-api/internal/validation"
)

// Service runs the payment pipeline: numeric validation of the card
// number and amount, then a read-only lookup against the user store.
// Nothing is persisted; a payment request is evaluated once and
// discarded.
type Service struct {
	users    users.Repository
	notifier notification.Notifier
}

// NewService constructs a payment service over the user store.
func NewService(repo users.Repository, notifier notification.Notifier) *Service {
	return &Service{users: repo, notifier: notifier}
}

// PaymentInput carries a payment request. Amounts are fixed-width
// 3-digit strings, so 0-999 units with no decimals.
type PaymentInput struct {
	CardNumber string
	Amount     string
}

// Receipt confirms an accepted payment.
type Receipt struct {
	Amount      string
	CompletedAt time.Time
}

// Message renders the confirmation reported to the caller.
func (r Receipt) Message() string {
	return fmt.Sprintf("Payment of %s made.", r.Amount)
}

// Pay validates the request and accepts it when the card is registered
// to a user. Validation short-circuits on the first violation: card
// number first, then amount.
func (s *Service) Pay(ctx context.Context, input PaymentInput) (Receipt, error) {
	if verr := validation.Number(input.CardNumber, 16); verr != nil {
		return Receipt{}, verr
	}
	if verr := validation.Number(input.Amount, 3); verr != nil {
		return Receipt{}, verr
	}

	user, err := s.users.FindByCardNumber(ctx, input.CardNumber)
	if err != nil {
		if errors.Is(err, users.ErrCardNotRegistered) {
			return Receipt{}, validation.NotFound("Credit card number not registered with any user.")
		}
		return Receipt{}, err
	}

	receipt := Receipt{Amount: input.Amount, CompletedAt: time.Now().UTC()}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindPaymentMade,
			Destination: user.Email,
			Body:        receipt.Message(),
		})
	}

	return receipt, nil
}
