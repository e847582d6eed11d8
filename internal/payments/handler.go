package payments

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Ryan-53/registration-and-payment-api/internal/validation"
)

// Handler exposes the payment endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// paymentFields is the presence-check order for a payment request.
var paymentFields = []string{"credit_card_number", "amount"}

// Pay handles POST /payments.
func (h *Handler) Pay(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if verr := validation.RequireFields(body, paymentFields); verr != nil {
		return fiber.NewError(verr.Status, verr.Message)
	}

	card, _ := body["credit_card_number"].(string)
	amount, _ := body["amount"].(string)

	receipt, err := h.service.Pay(c.UserContext(), PaymentInput{CardNumber: card, Amount: amount})
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return fiber.NewError(verr.Status, verr.Message)
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": receipt.Message(),
	})
}
