package handlers

import (
	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Hello greets the caller by name.
func Hello(c *fiber.Ctx) error {
	name := c.Query("name", "world")
	return utils.Text(c, fiber.StatusOK, "Hello, "+name)
}
