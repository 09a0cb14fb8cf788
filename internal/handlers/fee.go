package handlers

import (
	"tradedesk/internal/services/fee"
	"tradedesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// FeeCalculator computes the display fee for a decimal amount string.
type FeeCalculator interface {
	ComputeFeeFromString(amount string) (fee.Result, error)
}

type FeeHandler struct {
	calculator FeeCalculator
}

func NewFeeHandler(calculator FeeCalculator) *FeeHandler {
	return &FeeHandler{calculator: calculator}
}

// GetFee handles GET /api/fee?amount=<decimal>.
func (h *FeeHandler) GetFee(c *fiber.Ctx) error {
	result, err := h.calculator.ComputeFeeFromString(c.Query("amount"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Text(c, fiber.StatusOK, result.Display)
}
