package handlers

import (
	"log/slog"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "internal server error"

// respondError writes the JSON error body for err. Only sentinel messages
// reach the client; store and unclassified failures get a generic message.
func respondError(c *fiber.Ctx, err error) error {
	de, ok := apperrors.As(err)
	if !ok {
		slog.Default().ErrorContext(c.UserContext(), "unclassified handler error",
			"request_id", utils.RequestID(c), "path", c.Path())
		return utils.InternalError(c, internalMessage)
	}

	switch de.Kind {
	case apperrors.KindInvalidArgument:
		return utils.BadRequest(c, de.Code, de.Message)
	case apperrors.KindNotFound:
		return utils.NotFound(c, de.Code, de.Message)
	case apperrors.KindPrecision:
		return utils.UnprocessableEntity(c, de.Code, de.Message)
	case apperrors.KindStore:
		return utils.Error(c, fiber.StatusInternalServerError, de.Code, internalMessage)
	default:
		return utils.InternalError(c, internalMessage)
	}
}
