package middleware

import (
	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID assigns every request an ID, reusing a well-formed incoming
// X-Request-ID header and generating a new UUID otherwise.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(utils.RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
