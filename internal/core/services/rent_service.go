package services

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"

	"gorm.io/gorm"
)

// RentService debits each client's mandatory monthly outflow (rent or
// mortgage payment) on every whole-day boundary. The debit applies in
// full even when it drives the balance negative; the bankruptcy rule
// handles the fallout.
type RentService struct {
	clientRepo repositories.ClientRepository
	txRepo     repositories.TransactionRepository
	bankruptcy *BankruptcyService
}

// NewRentService creates a new rent service
func NewRentService(
	clientRepo repositories.ClientRepository,
	txRepo repositories.TransactionRepository,
	bankruptcy *BankruptcyService,
) *RentService {
	return &RentService{
		clientRepo: clientRepo,
		txRepo:     txRepo,
		bankruptcy: bankruptcy,
	}
}

// ChargeMonthly debits one month of mandatory outflow from each client
// of the slot, stamped with the given game day.
func (s *RentService) ChargeMonthly(ctx context.Context, tx *gorm.DB, slotID int, day int) error {
	clientRepo := s.clientRepo.WithTx(tx)
	txRepo := s.txRepo.WithTx(tx)

	clients, err := clientRepo.ListBySlot(ctx, slotID)
	if err != nil {
		return err
	}

	for _, client := range clients {
		if !client.MonthlyMandatory.IsPositive() {
			continue
		}
		client.CheckingBalance = client.CheckingBalance.Sub(client.MonthlyMandatory)
		s.bankruptcy.Evaluate(client, float64(day))
		if err := clientRepo.Update(ctx, client); err != nil {
			return err
		}
		entry := &models.Transaction{
			ClientID: client.ID,
			Type:     domain.TxRentDebit,
			Amount:   client.MonthlyMandatory,
			GameDay:  day,
		}
		if err := txRepo.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
