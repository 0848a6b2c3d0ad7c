package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	kudosHandler *handlers.KudosHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	if h := rateLimit(cfg.APIRateLimit); h != nil {
		api.Use(h)
	}

	api.Get("/health", healthHandler.Check)

	// Auth: stricter per-IP limit on credential checks
	auth := api.Group("/auth")
	if h := rateLimit(cfg.AuthRateLimit); h != nil {
		auth.Post("/login", h, authHandler.Login)
	} else {
		auth.Post("/login", authHandler.Login)
	}
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/", userHandler.Search)
	users.Get("/:id", userHandler.Get)

	// Feed and single kudos are public; /feed must be registered before /:id
	kudos := api.Group("/kudos")
	kudos.Get("/feed", kudosHandler.Feed)
	kudos.Get("/:id", kudosHandler.Get)
	kudos.Post("/", middleware.JWTProtected(cfg), kudosHandler.Submit)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired())
	admin.Get("/kudos", adminHandler.ListKudos)
	admin.Patch("/kudos/:id/hide", adminHandler.Hide)
	admin.Delete("/kudos/:id", adminHandler.Delete)
	admin.Get("/moderation-logs", adminHandler.ModerationLogs)
}

// rateLimit returns a per-IP sliding window limiter, or nil when max is 0.
func rateLimit(max int) fiber.Handler {
	if max <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests, please slow down",
			})
		},
	})
}
