package handlers

import (
	"context"
	"errors"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/pagination"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ClientHandler handles client and account ledger endpoints
type ClientHandler struct {
	clientService *services.ClientService
	ledgerService *services.LedgerService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService, ledgerService *services.LedgerService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		ledgerService: ledgerService,
	}
}

// CreateClientRequest represents create client request body
type CreateClientRequest struct {
	Name string `json:"name"`
}

// AmountRequest represents a money movement request body
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ListClients returns all clients of a slot
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	clients, err := h.clientService.ListClients(c.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			return response.NotFound(c, "Slot not found")
		default:
			return response.InternalServerError(c, "Failed to list clients")
		}
	}

	out := make([]*models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, client.ToResponse())
	}
	return response.Success(c, "Clients retrieved successfully", out)
}

// CreateClient opens a new client account
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}

	var req CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := h.clientService.CreateClient(c.Context(), slotID, &services.CreateClientInput{Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyClientName):
			return response.BadRequest(c, "Client name is required")
		case errors.Is(err, domain.ErrSlotNotFound):
			return response.NotFound(c, "Slot not found")
		default:
			return response.InternalServerError(c, "Failed to create client")
		}
	}
	return response.Created(c, "Client created successfully", client.ToResponse())
}

// GetClient returns one client
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	client, err := h.clientService.GetClient(c.Context(), slotID, clientID)
	if err != nil {
		return h.clientError(c, err, "Failed to load client")
	}
	return response.Success(c, "Client retrieved successfully", client.ToResponse())
}

// Deposit credits a client's checking account
func (h *ClientHandler) Deposit(c *fiber.Ctx) error {
	return h.moneyOp(c, h.ledgerService.Deposit, "Deposit successful")
}

// Withdraw debits a client's checking account
func (h *ClientHandler) Withdraw(c *fiber.Ctx) error {
	return h.moneyOp(c, h.ledgerService.Withdraw, "Withdrawal successful")
}

// SavingsDeposit moves money from checking into savings
func (h *ClientHandler) SavingsDeposit(c *fiber.Ctx) error {
	return h.moneyOp(c, h.ledgerService.TransferToSavings, "Savings deposit successful")
}

// SavingsWithdraw moves money from savings back to checking
func (h *ClientHandler) SavingsWithdraw(c *fiber.Ctx) error {
	return h.moneyOp(c, h.ledgerService.TransferFromSavings, "Savings withdrawal successful")
}

// ListTransactions returns a page of a client's ledger
func (h *ClientHandler) ListTransactions(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	params := pagination.GetParams(c)
	transactions, total, err := h.ledgerService.ListTransactions(c.Context(), slotID, clientID, params.Offset, params.Limit)
	if err != nil {
		return h.clientError(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", pagination.NewResponse(transactions, params, total))
}

// moneyOp runs one ledger mutation with shared parsing and error
// mapping
func (h *ClientHandler) moneyOp(
	c *fiber.Ctx,
	op func(ctx context.Context, slotID int, clientID uint, amount decimal.Decimal) (*models.Client, error),
	message string,
) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := op(c.Context(), slotID, clientID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.BadRequest(c, "Insufficient funds")
		case errors.Is(err, domain.ErrLimitExceeded):
			return response.BadRequest(c, "Daily withdrawal limit exceeded")
		case errors.Is(err, domain.ErrClientBankrupt):
			return response.Forbidden(c, "Client is bankrupt")
		default:
			return h.clientError(c, err, "Operation failed")
		}
	}
	return response.Success(c, message, client.ToResponse())
}

// clientError maps shared slot/client lookup failures
func (h *ClientHandler) clientError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return response.NotFound(c, "Slot not found")
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, "Client not found")
	default:
		return response.InternalServerError(c, fallback)
	}
}
