package handlers

import (
	"errors"

	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChartHandler handles read-only dashboard chart endpoints
type ChartHandler struct {
	chartService *services.ChartService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(chartService *services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// ClientBalances returns the per-client balance series
func (h *ChartHandler) ClientBalances(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	points, err := h.chartService.ClientBalances(c.Context(), slotID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return response.NotFound(c, "Slot not found")
		}
		return response.InternalServerError(c, "Failed to build chart")
	}
	return response.Success(c, "Chart retrieved successfully", points)
}

// Activity returns the cumulative money-flow series
func (h *ChartHandler) Activity(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	points, err := h.chartService.Activity(c.Context(), slotID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return response.NotFound(c, "Slot not found")
		}
		return response.InternalServerError(c, "Failed to build chart")
	}
	return response.Success(c, "Chart retrieved successfully", points)
}
