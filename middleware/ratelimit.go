package middleware

import (
	"time"

	"lumina/db"

	"github.com/gofiber/fiber/v2"
)

const rateLimitPeriod = 1 * time.Minute

// RateLimit caps requests per client IP over a one-minute window, backed by
// Redis. Requests pass through untouched when Redis is unavailable.
func RateLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db.Redis == nil {
			return c.Next()
		}

		key := "rate_limit:" + c.Path() + ":" + c.IP()

		count, err := db.Redis.Incr(c.Context(), key).Result()
		if err != nil {
			// Redis trouble should not block traffic
			return c.Next()
		}
		if count == 1 {
			db.Redis.Expire(c.Context(), key, rateLimitPeriod)
		}
		if count > limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		}

		return c.Next()
	}
}
