package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stepforge/onboarding-backend/internal/config"
	"github.com/stepforge/onboarding-backend/internal/dto"
)

// SessionProtected requires a valid session token. An expired or garbled
// token reads as "no session": the client discards its pointer and starts
// over at the identity step.
func SessionProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired session",
				Code:    "session_invalid",
			})
		},
	})
}
