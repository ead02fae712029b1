package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/cardgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClientService handles client lifecycle within a slot
type ClientService struct {
	sim        *SimulationService
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(sim *SimulationService, clientRepo repositories.ClientRepository) *ClientService {
	return &ClientService{sim: sim, clientRepo: clientRepo}
}

// CreateClientInput represents create client input
type CreateClientInput struct {
	Name string `json:"name"`
}

// CreateClient opens a new client with zero balances and a freshly
// generated debit card.
func (s *ClientService) CreateClient(ctx context.Context, slotID int, input *CreateClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyClientName
	}

	card := cardgen.Generate()
	var client *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		client = &models.Client{
			SlotID:           slotID,
			Name:             name,
			CheckingBalance:  decimal.Zero,
			SavingsBalance:   decimal.Zero,
			DailyWithdrawn:   decimal.Zero,
			CardNumber:       card.Number,
			CardExpiry:       card.Expiry,
			CardCVV:          card.CVV,
			EmploymentStatus: domain.EmploymentUnemployed,
			MonthlyIncome:    decimal.Zero,
			MonthlyMandatory: decimal.Zero,
			LastActivityDay:  state.GameDay,
		}
		return s.clientRepo.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("👤 Slot %d: new client %q (#%d)", slotID, client.Name, client.ID)
	return client, nil
}

// GetClient returns one client, clock freshly advanced
func (s *ClientService) GetClient(ctx context.Context, slotID int, clientID uint) (*models.Client, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetBySlotAndID(ctx, slotID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// ListClients returns all clients of a slot, clock freshly advanced
func (s *ClientService) ListClients(ctx context.Context, slotID int) ([]*models.Client, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	return s.clientRepo.ListBySlot(ctx, slotID)
}
