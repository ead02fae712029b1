package services

import (
	"context"
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentService manages the bank's pooled SP500 position. Invested
// money moves out of liquid cash and back; growth and dividends on the
// position are applied by the scheduled yearly ticks.
type InvestmentService struct {
	sim       *SimulationService
	bankRepo  repositories.BankStateRepository
	eventRepo repositories.InvestmentEventRepository
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(
	sim *SimulationService,
	bankRepo repositories.BankStateRepository,
	eventRepo repositories.InvestmentEventRepository,
) *InvestmentService {
	return &InvestmentService{
		sim:       sim,
		bankRepo:  bankRepo,
		eventRepo: eventRepo,
	}
}

// Invest moves liquid cash into the SP500 position
func (s *InvestmentService) Invest(ctx context.Context, slotID int, amount decimal.Decimal) (*models.BankState, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *models.BankState
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		if state.LiquidCash.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			state.LiquidCash = state.LiquidCash.Sub(amount)
			state.InvestedSp500 = state.InvestedSp500.Add(amount)
			if err := s.bankRepo.WithTx(tx).Save(ctx, state); err != nil {
				return err
			}
			result = state
			return s.appendEvent(ctx, tx, slotID, domain.InvestEventInvest, amount, state.GameDay)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📊 Slot %d: invested %s into SP500", slotID, amount.String())
	return result, nil
}

// Divest moves money out of the SP500 position back to liquid cash
func (s *InvestmentService) Divest(ctx context.Context, slotID int, amount decimal.Decimal) (*models.BankState, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *models.BankState
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		if state.InvestedSp500.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			state.InvestedSp500 = state.InvestedSp500.Sub(amount)
			state.LiquidCash = state.LiquidCash.Add(amount)
			if err := s.bankRepo.WithTx(tx).Save(ctx, state); err != nil {
				return err
			}
			result = state
			return s.appendEvent(ctx, tx, slotID, domain.InvestEventDivest, amount, state.GameDay)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📊 Slot %d: divested %s from SP500", slotID, amount.String())
	return result, nil
}

// ListEvents returns the slot's investment history newest first
func (s *InvestmentService) ListEvents(ctx context.Context, slotID int, limit int) ([]*models.InvestmentEvent, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListBySlot(ctx, slotID, limit)
}

func (s *InvestmentService) appendEvent(ctx context.Context, tx *gorm.DB, slotID int, eventType domain.InvestmentEventType, amount decimal.Decimal, day float64) error {
	event := &models.InvestmentEvent{
		SlotID:  slotID,
		Type:    eventType,
		Asset:   "SP500",
		Amount:  amount,
		GameDay: gameclock.WholeDay(day),
	}
	return s.eventRepo.WithTx(tx).Append(ctx, event)
}
