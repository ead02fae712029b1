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

// LendingHandler handles loan and mortgage endpoints
type LendingHandler struct {
	lendingService *services.LendingService
}

// NewLendingHandler creates a new lending handler
func NewLendingHandler(lendingService *services.LendingService) *LendingHandler {
	return &LendingHandler{lendingService: lendingService}
}

// ApplyLoanRequest represents loan application request body
type ApplyLoanRequest struct {
	ClientID  uint            `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	TermYears int             `json:"term_years"`
}

// ApplyMortgageRequest represents mortgage application request body
type ApplyMortgageRequest struct {
	ProductID   uint            `json:"product_id"`
	DownPayment decimal.Decimal `json:"down_payment"`
	TermYears   int             `json:"term_years"`
}

// ApplyLoan files a loan application
func (h *LendingHandler) ApplyLoan(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	var req ApplyLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.lendingService.ApplyLoan(c.Context(), slotID, &services.ApplyLoanInput{
		ClientID:  req.ClientID,
		Amount:    req.Amount,
		TermYears: req.TermYears,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to apply for loan")
	}
	return response.Created(c, "Loan application filed", loan)
}

// ListLoans returns a slot's loans, optionally filtered by client_id
func (h *LendingHandler) ListLoans(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID := uint(c.QueryInt("client_id", 0))

	loans, err := h.lendingService.ListLoans(c.Context(), slotID, clientID)
	if err != nil {
		return h.mapError(c, err, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// ApproveLoan approves a pending loan
func (h *LendingHandler) ApproveLoan(c *fiber.Ctx) error {
	return h.loanDecision(c, h.lendingService.ApproveLoan, "Loan approved")
}

// RejectLoan rejects a pending loan
func (h *LendingHandler) RejectLoan(c *fiber.Ctx) error {
	return h.loanDecision(c, h.lendingService.RejectLoan, "Loan rejected")
}

// ApplyMortgage files a mortgage application for a client
func (h *LendingHandler) ApplyMortgage(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	var req ApplyMortgageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mortgage, err := h.lendingService.ApplyMortgage(c.Context(), slotID, &services.ApplyMortgageInput{
		ClientID:    clientID,
		ProductID:   req.ProductID,
		DownPayment: req.DownPayment,
		TermYears:   req.TermYears,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to apply for mortgage")
	}
	return response.Created(c, "Mortgage application filed", mortgage)
}

// ListMortgages returns a slot's mortgages, optionally filtered by client_id
func (h *LendingHandler) ListMortgages(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID := uint(c.QueryInt("client_id", 0))

	mortgages, err := h.lendingService.ListMortgages(c.Context(), slotID, clientID)
	if err != nil {
		return h.mapError(c, err, "Failed to list mortgages")
	}
	return response.Success(c, "Mortgages retrieved successfully", mortgages)
}

// ApproveMortgage accepts a pending mortgage
func (h *LendingHandler) ApproveMortgage(c *fiber.Ctx) error {
	return h.mortgageDecision(c, h.lendingService.AcceptMortgage, "Mortgage accepted")
}

// RejectMortgage rejects a pending mortgage
func (h *LendingHandler) RejectMortgage(c *fiber.Ctx) error {
	return h.mortgageDecision(c, h.lendingService.RejectMortgage, "Mortgage rejected")
}

func (h *LendingHandler) loanDecision(
	c *fiber.Ctx,
	op func(ctx context.Context, slotID int, loanID uint) (*models.Loan, error),
	message string,
) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	loanID, ok := uintParam(c, "loanId")
	if !ok {
		return response.BadRequest(c, "Invalid loan id")
	}

	loan, err := op(c.Context(), slotID, loanID)
	if err != nil {
		return h.mapError(c, err, "Failed to decide loan")
	}
	return response.Success(c, message, loan)
}

func (h *LendingHandler) mortgageDecision(
	c *fiber.Ctx,
	op func(ctx context.Context, slotID int, mortgageID uint) (*models.Mortgage, error),
	message string,
) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	mortgageID, ok := uintParam(c, "mortgageId")
	if !ok {
		return response.BadRequest(c, "Invalid mortgage id")
	}

	mortgage, err := op(c.Context(), slotID, mortgageID)
	if err != nil {
		return h.mapError(c, err, "Failed to decide mortgage")
	}
	return response.Success(c, message, mortgage)
}

func (h *LendingHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return response.BadRequest(c, "Invalid amount")
	case errors.Is(err, domain.ErrInvalidTerm):
		return response.BadRequest(c, "Term must be between 5 and 30 years")
	case errors.Is(err, domain.ErrInvalidState):
		return response.Conflict(c, "Application already decided")
	case errors.Is(err, domain.ErrPropertyTaken):
		return response.Conflict(c, "Property is not available")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return response.BadRequest(c, "Insufficient funds")
	case errors.Is(err, domain.ErrClientBankrupt):
		return response.Forbidden(c, "Client is bankrupt")
	case errors.Is(err, domain.ErrSlotNotFound):
		return response.NotFound(c, "Slot not found")
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, "Client not found")
	case errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, domain.ErrMortgageNotFound):
		return response.NotFound(c, "Mortgage not found")
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound(c, "Property not found")
	default:
		return response.InternalServerError(c, fallback)
	}
}
