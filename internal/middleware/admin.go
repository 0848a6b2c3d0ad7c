package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireCapability must run after JWTProtected. The role comes from the verified
// token claims; handlers check again through the services.
func RequireCapability(capability models.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !caller.Can(capability) {
			slog.Warn("admin access denied",
				"user_id", caller.UserID,
				"role", caller.Role,
				"path", c.Path(),
				"request_id", c.Locals("requestid"),
			)
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return RequireCapability(models.CapModerateKudos)
}
