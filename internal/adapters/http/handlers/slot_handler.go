package handlers

import (
	"errors"

	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SlotHandler handles save-slot and bank dashboard endpoints
type SlotHandler struct {
	slotService *services.SlotService
}

// NewSlotHandler creates a new slot handler
func NewSlotHandler(slotService *services.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// ListSlots returns summaries of all save slots
func (h *SlotHandler) ListSlots(c *fiber.Ctx) error {
	slots, err := h.slotService.ListSlots(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list slots")
	}
	return response.Success(c, "Slots retrieved successfully", slots)
}

// StartSlot wipes a slot and starts it fresh
func (h *SlotHandler) StartSlot(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	if err := h.slotService.ResetSlot(c.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			return response.NotFound(c, "Slot not found")
		default:
			return response.InternalServerError(c, "Failed to reset slot")
		}
	}
	return response.Success(c, "Slot reset successfully", nil)
}

// SeedDemo fills the showcase slot with demo data
func (h *SlotHandler) SeedDemo(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	if slotID != 1 {
		return response.BadRequest(c, "Demo seed is only available for slot 1")
	}

	if err := h.slotService.SeedDemo(c.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			return response.NotFound(c, "Slot not found")
		default:
			return response.InternalServerError(c, "Failed to seed demo data")
		}
	}
	return response.Success(c, "Demo data seeded successfully", nil)
}

// GetBank returns the bank dashboard snapshot of a slot
func (h *SlotHandler) GetBank(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	snapshot, err := h.slotService.GetBank(c.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			return response.NotFound(c, "Slot not found")
		default:
			return response.InternalServerError(c, "Failed to load bank state")
		}
	}
	return response.Success(c, "Bank state retrieved successfully", snapshot)
}
