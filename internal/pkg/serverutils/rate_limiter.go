package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// ProviderRateLimiter caps provider-backed calls per client IP.
func ProviderRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "too many requests"))
		},
	})
}
