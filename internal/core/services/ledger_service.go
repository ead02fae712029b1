package services

import (
	"context"
	"errors"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService handles deposits, withdrawals and savings transfers.
// Every mutation writes the balance change and its immutable ledger
// entry in one database transaction, under the slot lock.
type LedgerService struct {
	sim        *SimulationService
	clientRepo repositories.ClientRepository
	txRepo     repositories.TransactionRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	sim *SimulationService,
	clientRepo repositories.ClientRepository,
	txRepo repositories.TransactionRepository,
) *LedgerService {
	return &LedgerService{
		sim:        sim,
		clientRepo: clientRepo,
		txRepo:     txRepo,
	}
}

// AmountInput represents a money movement request
type AmountInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit credits the client's checking account. Deposits are always
// allowed, bankrupt clients included: restoring the balance is the
// only way out of bankruptcy.
func (s *LedgerService) Deposit(ctx context.Context, slotID int, clientID uint, amount decimal.Decimal) (*models.Client, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.loadClient(ctx, tx, slotID, clientID)
			if err != nil {
				return err
			}
			client.CheckingBalance = client.CheckingBalance.Add(amount)
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}
			result = client
			return s.appendEntry(ctx, tx, client.ID, domain.TxDeposit, amount, state.GameDay)
		})
	})
	return result, err
}

// Withdraw debits the client's checking account. Withdrawals are
// refused for bankrupt clients, for amounts beyond the balance, and
// for amounts that would exceed the daily withdrawal limit.
func (s *LedgerService) Withdraw(ctx context.Context, slotID int, clientID uint, amount decimal.Decimal) (*models.Client, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	limit := s.sim.Config().DailyWithdrawalLimit
	var result *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.loadClient(ctx, tx, slotID, clientID)
			if err != nil {
				return err
			}
			if client.Bankrupt {
				return domain.ErrClientBankrupt
			}
			if client.CheckingBalance.LessThan(amount) {
				return domain.ErrInsufficientFunds
			}
			// The ledger is the authority on today's withdrawals; the
			// DailyWithdrawn column is a display cache derived from it.
			withdrawn, err := s.txRepo.WithTx(tx).SumWithdrawnOnDay(ctx, client.ID, gameclock.WholeDay(state.GameDay))
			if err != nil {
				return err
			}
			if withdrawn.Add(amount).GreaterThan(limit) {
				return domain.ErrLimitExceeded
			}
			client.CheckingBalance = client.CheckingBalance.Sub(amount)
			client.DailyWithdrawn = withdrawn.Add(amount)
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}
			result = client
			return s.appendEntry(ctx, tx, client.ID, domain.TxWithdrawal, amount, state.GameDay)
		})
	})
	return result, err
}

// TransferToSavings moves money from checking to savings. Internal
// transfers never change the client's combined holdings, so their
// ledger entries carry a zero sign.
func (s *LedgerService) TransferToSavings(ctx context.Context, slotID int, clientID uint, amount decimal.Decimal) (*models.Client, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.loadClient(ctx, tx, slotID, clientID)
			if err != nil {
				return err
			}
			if client.CheckingBalance.LessThan(amount) {
				return domain.ErrInsufficientFunds
			}
			client.CheckingBalance = client.CheckingBalance.Sub(amount)
			client.SavingsBalance = client.SavingsBalance.Add(amount)
			client.LastActivityDay = state.GameDay
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}
			result = client
			return s.appendEntry(ctx, tx, client.ID, domain.TxSavingsDeposit, amount, state.GameDay)
		})
	})
	return result, err
}

// TransferFromSavings moves money from savings back to checking
func (s *LedgerService) TransferFromSavings(ctx context.Context, slotID int, clientID uint, amount decimal.Decimal) (*models.Client, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *models.Client
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			client, err := s.loadClient(ctx, tx, slotID, clientID)
			if err != nil {
				return err
			}
			if client.SavingsBalance.LessThan(amount) {
				return domain.ErrInsufficientFunds
			}
			client.SavingsBalance = client.SavingsBalance.Sub(amount)
			client.CheckingBalance = client.CheckingBalance.Add(amount)
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}
			result = client
			return s.appendEntry(ctx, tx, client.ID, domain.TxSavingsWithdrawal, amount, state.GameDay)
		})
	})
	return result, err
}

// ListTransactions returns a page of the client's ledger in game-day
// order together with the total entry count.
func (s *LedgerService) ListTransactions(ctx context.Context, slotID int, clientID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	if err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		_, err := s.clientRepo.GetBySlotAndID(ctx, slotID, clientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrClientNotFound
		}
		return err
	}); err != nil {
		return nil, 0, err
	}
	return s.txRepo.ListByClient(ctx, clientID, offset, limit)
}

func (s *LedgerService) loadClient(ctx context.Context, tx *gorm.DB, slotID int, clientID uint) (*models.Client, error) {
	client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *LedgerService) appendEntry(ctx context.Context, tx *gorm.DB, clientID uint, txType domain.TransactionType, amount decimal.Decimal, day float64) error {
	entry := &models.Transaction{
		ClientID: clientID,
		Type:     txType,
		Amount:   amount,
		GameDay:  gameclock.WholeDay(day),
	}
	return s.txRepo.WithTx(tx).Append(ctx, entry)
}
