package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Ryan-53/registration-and-payment-api/internal/validation"
)

// Handler exposes the user endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// registrationFields is the presence-check order; the credit card
// number is never required.
var registrationFields = []string{"username", "password", "email", "dob"}

// Register handles POST /users.
func (h *Handler) Register(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if verr := validation.RequireFields(body, registrationFields); verr != nil {
		return fiber.NewError(verr.Status, verr.Message)
	}

	input := RegisterInput{
		Username:    stringField(body, "username"),
		Password:    stringField(body, "password"),
		Email:       stringField(body, "email"),
		DateOfBirth: stringField(body, "dob"),
	}
	if raw, ok := body["credit_card_number"]; ok {
		card, _ := raw.(string)
		input.CreditCardNumber = &card
	}

	user, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return fiber.NewError(verr.Status, verr.Message)
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	if h.logger != nil {
		h.logger.Info("user registered",
			slog.String("username", user.Username),
			slog.Bool("has_card", user.HasCard()),
			slog.Int("status", http.StatusCreated),
		)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User successfully registered",
		"user":    user,
	})
}

// List handles GET /users with the optional CreditCard=Yes|No filter.
// Zero matches yield a bare 204 rather than an empty array.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := CardFilterFromQuery(c.Query("CreditCard"))

	matched, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	if len(matched) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusOK).JSON(matched)
}

// stringField pulls a string value out of the decoded body. A value of
// any other JSON type coerces to "" so the field validators reject it
// as malformed rather than the handler inventing its own error shape.
func stringField(body map[string]any, key string) string {
	value, _ := body[key].(string)
	return value
}
