package handlers

import (
	"errors"

	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LivingHandler handles rentals, property ownership and the property
// market endpoints
type LivingHandler struct {
	livingService *services.LivingService
}

// NewLivingHandler creates a new living handler
func NewLivingHandler(livingService *services.LivingService) *LivingHandler {
	return &LivingHandler{livingService: livingService}
}

// ListRentals returns the rental catalog
func (h *LivingHandler) ListRentals(c *fiber.Ctx) error {
	rentals, err := h.livingService.ListRentals(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list rentals")
	}
	return response.Success(c, "Rentals retrieved successfully", rentals)
}

// ListProducts returns a slot's available property listings
func (h *LivingHandler) ListProducts(c *fiber.Ctx) error {
	return h.listProducts(c, false)
}

// ListAllProducts returns every property listing including owned ones
func (h *LivingHandler) ListAllProducts(c *fiber.Ctx) error {
	return h.listProducts(c, true)
}

func (h *LivingHandler) listProducts(c *fiber.Ctx, all bool) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	products, err := h.livingService.ListProducts(c.Context(), slotID, all)
	if err != nil {
		return h.mapError(c, err, "Failed to list properties")
	}
	return response.Success(c, "Properties retrieved successfully", products)
}

// GetLiving returns a client's current living arrangement
func (h *LivingHandler) GetLiving(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	living, err := h.livingService.GetLiving(c.Context(), slotID, clientID)
	if err != nil {
		return h.mapError(c, err, "Failed to load living arrangement")
	}
	return response.Success(c, "Living arrangement retrieved successfully", living)
}

// SetRental moves a client into a catalog rental
func (h *LivingHandler) SetRental(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}
	rentalID, ok := uintParam(c, "rentalId")
	if !ok {
		return response.BadRequest(c, "Invalid rental id")
	}

	living, err := h.livingService.SetRental(c.Context(), slotID, clientID, rentalID)
	if err != nil {
		return h.mapError(c, err, "Failed to set rental")
	}
	return response.Success(c, "Rental assigned successfully", living)
}

// BuyProperty is the outright cash purchase path
func (h *LivingHandler) BuyProperty(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return response.BadRequest(c, "Invalid property id")
	}

	product, err := h.livingService.BuyProperty(c.Context(), slotID, clientID, productID)
	if err != nil {
		return h.mapError(c, err, "Failed to buy property")
	}
	return response.Success(c, "Property purchased successfully", product)
}

// ClearLiving resets a client's arrangement to NONE
func (h *LivingHandler) ClearLiving(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	if err := h.livingService.ClearLiving(c.Context(), slotID, clientID); err != nil {
		return h.mapError(c, err, "Failed to clear living arrangement")
	}
	return response.Success(c, "Living arrangement cleared", nil)
}

// SellProperty returns an owned property to the market
func (h *LivingHandler) SellProperty(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return response.BadRequest(c, "Invalid property id")
	}

	product, err := h.livingService.SellProperty(c.Context(), slotID, clientID, productID)
	if err != nil {
		return h.mapError(c, err, "Failed to sell property")
	}
	return response.Success(c, "Property sold successfully", product)
}

func (h *LivingHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return response.NotFound(c, "Slot not found")
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, "Client not found")
	case errors.Is(err, domain.ErrRentalNotFound):
		return response.NotFound(c, "Rental not found")
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound(c, "Property not found")
	case errors.Is(err, domain.ErrPropertyTaken):
		return response.Conflict(c, "Property is not available")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return response.BadRequest(c, "Insufficient funds")
	case errors.Is(err, domain.ErrClientBankrupt):
		return response.Forbidden(c, "Client is bankrupt")
	case errors.Is(err, domain.ErrInvalidState):
		return response.Conflict(c, "Client does not own this property")
	default:
		return response.InternalServerError(c, fallback)
	}
}
