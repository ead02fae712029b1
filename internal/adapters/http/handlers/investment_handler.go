package handlers

import (
	"context"
	"errors"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// InvestmentHandler handles the bank's SP500 position endpoints
type InvestmentHandler struct {
	investmentService *services.InvestmentService
	slotService       *services.SlotService
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentService *services.InvestmentService, slotService *services.SlotService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		slotService:       slotService,
	}
}

// Snapshot returns the slot's SP500 position plus its event history
func (h *InvestmentHandler) Snapshot(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	bank, err := h.slotService.GetBank(c.Context(), slotID)
	if err != nil {
		return h.mapError(c, err, "Failed to load investment state")
	}
	events, err := h.investmentService.ListEvents(c.Context(), slotID, 50)
	if err != nil {
		return h.mapError(c, err, "Failed to load investment events")
	}

	return response.Success(c, "Investment state retrieved successfully", fiber.Map{
		"sp500_price":         bank.Sp500Price,
		"invested":            bank.InvestedSp500,
		"liquid_cash":         bank.LiquidCash,
		"next_growth_label":   bank.NextGrowthLabel,
		"next_dividend_label": bank.NextDividendLabel,
		"events":              events,
	})
}

// Invest moves liquid cash into the SP500 position
func (h *InvestmentHandler) Invest(c *fiber.Ctx) error {
	return h.moveOp(c, h.investmentService.Invest, "Investment successful")
}

// Divest moves money out of the SP500 position
func (h *InvestmentHandler) Divest(c *fiber.Ctx) error {
	return h.moveOp(c, h.investmentService.Divest, "Divestment successful")
}

func (h *InvestmentHandler) moveOp(
	c *fiber.Ctx,
	op func(ctx context.Context, slotID int, amount decimal.Decimal) (*models.BankState, error),
	message string,
) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	state, err := op(c.Context(), slotID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.BadRequest(c, "Insufficient funds")
		default:
			return h.mapError(c, err, "Operation failed")
		}
	}
	return response.Success(c, message, state)
}

func (h *InvestmentHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, domain.ErrSlotNotFound) {
		return response.NotFound(c, "Slot not found")
	}
	return response.InternalServerError(c, fallback)
}
