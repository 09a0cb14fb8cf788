package utils

import "github.com/gofiber/fiber/v2"

// RequestIDKey is the fiber Locals key holding the per-request ID.
const RequestIDKey = "request_id"

// RequestID returns the ID assigned by the request ID middleware, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Text sends a plain text response.
func Text(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(body)
}

// Error sends a JSON error body carrying a machine-readable code.
func Error(c *fiber.Ctx, status int, code, message string) error {
	body := fiber.Map{
		"error": message,
		"code":  code,
	}
	if id := RequestID(c); id != "" {
		body["request_id"] = id
	}
	return Respond(c, status, body)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusNotFound, code, message)
}

// UnprocessableEntity sends a JSON error response with status 422.
func UnprocessableEntity(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusUnprocessableEntity, code, message)
}

// TooManyRequests sends a JSON error response with status 429.
func TooManyRequests(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusTooManyRequests, "RATE_LIMITED", message)
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "INTERNAL", message)
}
