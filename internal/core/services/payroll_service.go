package services

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"

	"gorm.io/gorm"
)

// PayrollService credits employed clients their monthly salary. One
// game day is one calendar month, so payroll runs on every whole-day
// boundary.
type PayrollService struct {
	clientRepo repositories.ClientRepository
	txRepo     repositories.TransactionRepository
	bankruptcy *BankruptcyService
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	clientRepo repositories.ClientRepository,
	txRepo repositories.TransactionRepository,
	bankruptcy *BankruptcyService,
) *PayrollService {
	return &PayrollService{
		clientRepo: clientRepo,
		txRepo:     txRepo,
		bankruptcy: bankruptcy,
	}
}

// RunPayroll deposits one month of salary into every employed client
// of the slot, stamped with the given game day. Bankrupt clients still
// receive payroll; an incoming deposit is how they recover.
func (s *PayrollService) RunPayroll(ctx context.Context, tx *gorm.DB, slotID int, day int) error {
	clientRepo := s.clientRepo.WithTx(tx)
	txRepo := s.txRepo.WithTx(tx)

	clients, err := clientRepo.ListEmployedBySlot(ctx, slotID)
	if err != nil {
		return err
	}

	for _, client := range clients {
		if client.MonthlyIncome.IsZero() {
			continue
		}
		client.CheckingBalance = client.CheckingBalance.Add(client.MonthlyIncome)
		s.bankruptcy.Evaluate(client, float64(day))
		if err := clientRepo.Update(ctx, client); err != nil {
			return err
		}
		entry := &models.Transaction{
			ClientID: client.ID,
			Type:     domain.TxPayrollDeposit,
			Amount:   client.MonthlyIncome,
			GameDay:  day,
		}
		if err := txRepo.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
