package handlers

import (
	"encoding/json"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/money"
	"tradedesk/internal/services/balance"
	"tradedesk/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Delta accepts either a JSON number or a numeric string and is parsed as
// an exact decimal, never through float64.
type updateBalanceRequest struct {
	Account string      `json:"account" validate:"required,max=64"`
	Delta   json.Number `json:"delta" validate:"required,max=64"`
}

type lookupBalanceRequest struct {
	Account string `json:"account" validate:"required,max=64"`
}

type BalanceHandler struct {
	service  balance.Service
	validate *validator.Validate
}

func NewBalanceHandler(service balance.Service) *BalanceHandler {
	return &BalanceHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// UpdateBalance handles POST /api/balance.
func (h *BalanceHandler) UpdateBalance(c *fiber.Ctx) error {
	var req updateBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "INVALID_BODY", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, validationError(err))
	}

	delta, err := money.Parse(string(req.Delta))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.UpdateBalance(c.UserContext(), req.Account, delta); err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"account": utils.MaskAccount(req.Account),
		"status":  "updated",
	})
}

// LookupBalance handles POST /api/balance/lookup.
func (h *BalanceHandler) LookupBalance(c *fiber.Ctx) error {
	var req lookupBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "INVALID_BODY", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, validationError(err))
	}

	bal, err := h.service.GetBalance(c.UserContext(), req.Account)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"account": utils.MaskAccount(req.Account),
		"balance": bal.StringFixed(balance.BalanceScale),
	})
}

// validationError maps the first failed struct tag to its domain error.
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.InvalidArgument("INVALID_BODY", "invalid request body")
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Account":
		if fe.Tag() == "max" {
			return apperrors.ErrAccountTooLong
		}
		return apperrors.ErrAccountRequired
	case "Delta":
		if fe.Tag() == "required" {
			return apperrors.ErrAmountRequired
		}
		return apperrors.ErrInvalidAmount
	}
	return apperrors.InvalidArgument("INVALID_BODY", "invalid request body")
}
