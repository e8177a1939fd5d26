package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenMiddleware guards the webhook surface with the shared token
// configured for the messaging gateway. Constant-time compare so the
// token length is the only thing a probe can learn.
func AccessTokenMiddleware(expected string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if expected == "" {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse(fiber.StatusServiceUnavailable, "Webhook token not configured"))
		}

		got := ctx.Get("X-Access-Token")
		if len(got) != len(expected) ||
			subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid access token"))
		}

		return ctx.Next()
	}
}
