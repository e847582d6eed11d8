package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/Ryan-53/registration-and-payment-api/internal/config"
	"github.com/Ryan-53/registration-and-payment-api/internal/middleware"
	"github.com/Ryan-53/registration-and-payment-api/internal/notification"
	"github.com/Ryan-53/registration-and-payment-api/internal/payments"
	"github.com/Ryan-53/registration-and-payment-api/internal/users"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. The user
// store is constructed here, once, and injected into both pipelines so
// they observe the same process-lifetime state.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers share one in-memory store.
	repo := users.NewMemoryRepository()
	notifier := notification.NewLoggerNotifier(d.Logger)
	userSvc := users.NewService(repo, notifier)
	paymentSvc := payments.NewService(repo, notifier)

	userHandler := users.NewHandler(userSvc, d.Logger)
	paymentHandler := payments.NewHandler(paymentSvc)

	// Rate limiting guards the mutating endpoints only; it is a no-op
	// without Redis.
	rateLimiter := middleware.RateLimit(d.Cache, d.Cfg.RateLimit)

	RegisterUserRoutes(app, userHandler, rateLimiter)
	RegisterPaymentRoutes(app, paymentHandler, rateLimiter)

	return nil
}

// RegisterUserRoutes wires the registration and listing endpoints.
func RegisterUserRoutes(r fiber.Router, h *users.Handler, rateLimiter fiber.Handler) {
	r.Post("/users", rateLimiter, h.Register)
	r.Get("/users", h.List)
}

// RegisterPaymentRoutes wires the payment endpoint.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler, rateLimiter fiber.Handler) {
	r.Post("/payments", rateLimiter, h.Pay)
}
