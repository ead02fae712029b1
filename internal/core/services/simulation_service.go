package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/config"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner runs a unit of work inside one database transaction.
// *gorm.DB satisfies it directly.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// SimulationService owns the game clock of every slot. Each slot has a
// single mutex: all state mutations of a slot, whether driven by an
// API call or by the cron tick, run one at a time under that lock with
// the clock advanced first. Game time advances lazily from wall-clock
// elapsed time, so a slot that nobody touches still catches up on its
// missed days the next time it is read.
type SimulationService struct {
	db         TxRunner
	cfg        config.SimulationConfig
	clock      *gameclock.Clock
	bankRepo   repositories.BankStateRepository
	clientRepo repositories.ClientRepository
	eventRepo  repositories.InvestmentEventRepository
	payroll    *PayrollService
	rent       *RentService
	bankruptcy *BankruptcyService

	mu []sync.Mutex
}

// NewSimulationService creates a new simulation service
func NewSimulationService(
	db TxRunner,
	cfg config.SimulationConfig,
	clock *gameclock.Clock,
	bankRepo repositories.BankStateRepository,
	clientRepo repositories.ClientRepository,
	eventRepo repositories.InvestmentEventRepository,
	payroll *PayrollService,
	rent *RentService,
	bankruptcy *BankruptcyService,
) *SimulationService {
	return &SimulationService{
		db:         db,
		cfg:        cfg,
		clock:      clock,
		bankRepo:   bankRepo,
		clientRepo: clientRepo,
		eventRepo:  eventRepo,
		payroll:    payroll,
		rent:       rent,
		bankruptcy: bankruptcy,
		mu:         make([]sync.Mutex, cfg.SlotCount),
	}
}

// Clock exposes the game clock for label rendering
func (s *SimulationService) Clock() *gameclock.Clock {
	return s.clock
}

// SlotCount returns the number of configured save slots
func (s *SimulationService) SlotCount() int {
	return s.cfg.SlotCount
}

func (s *SimulationService) lock(slotID int) (*sync.Mutex, error) {
	if slotID < 1 || slotID > s.cfg.SlotCount {
		return nil, domain.ErrSlotNotFound
	}
	return &s.mu[slotID-1], nil
}

// WithSlot advances the slot's clock and then runs fn under the slot
// lock. Every mutating operation on a slot goes through here so that
// it observes a current game day and excludes concurrent writers.
func (s *SimulationService) WithSlot(ctx context.Context, slotID int, fn func(state *models.BankState) error) error {
	mu, err := s.lock(slotID)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	state, err := s.advanceLocked(ctx, slotID)
	if err != nil {
		return err
	}
	return fn(state)
}

// Advance catches the slot up to the current wall-clock time and
// returns its state. This is the read path: GET handlers call it so
// that every response reflects a fresh game day.
func (s *SimulationService) Advance(ctx context.Context, slotID int) (*models.BankState, error) {
	mu, err := s.lock(slotID)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	return s.advanceLocked(ctx, slotID)
}

// advanceLocked moves the slot's game day forward by the elapsed wall
// time and replays every crossed whole-day boundary in order: reset of
// daily withdrawal counters, payroll, rent, scheduled investment
// ticks, then the bankruptcy sweep. Caller must hold the slot lock.
func (s *SimulationService) advanceLocked(ctx context.Context, slotID int) (*models.BankState, error) {
	state, err := s.bankRepo.GetBySlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	now := time.Now()
	newDay := s.clock.Advance(state.GameDay, state.LastUpdate, now)
	fromWhole := gameclock.WholeDay(state.GameDay)
	toWhole := gameclock.WholeDay(newDay)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for day := fromWhole + 1; day <= toWhole; day++ {
			if err := s.runDayBoundary(ctx, tx, state, day); err != nil {
				return err
			}
		}
		state.GameDay = newDay
		state.LastUpdate = now
		return s.bankRepo.WithTx(tx).Save(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// runDayBoundary applies the effects of one whole-day crossing
func (s *SimulationService) runDayBoundary(ctx context.Context, tx *gorm.DB, state *models.BankState, day int) error {
	clientRepo := s.clientRepo.WithTx(tx)

	if err := clientRepo.ResetDailyWithdrawn(ctx, state.SlotID); err != nil {
		return err
	}
	if err := s.payroll.RunPayroll(ctx, tx, state.SlotID, day); err != nil {
		return err
	}
	if err := s.rent.ChargeMonthly(ctx, tx, state.SlotID, day); err != nil {
		return err
	}
	if err := s.runInvestmentTicks(ctx, tx, state, day); err != nil {
		return err
	}
	return s.sweepBankruptcies(ctx, tx, state.SlotID, day)
}

// runInvestmentTicks applies the yearly growth and dividend events
// that are due on or before the given day, rescheduling each one a
// full game year ahead.
func (s *SimulationService) runInvestmentTicks(ctx context.Context, tx *gorm.DB, state *models.BankState, day int) error {
	eventRepo := s.eventRepo.WithTx(tx)

	for day >= state.NextGrowthDay {
		gain := state.InvestedSp500.Mul(s.cfg.AnnualGrowthRate).Round(2)
		state.InvestedSp500 = state.InvestedSp500.Add(gain)
		state.Sp500Price = state.Sp500Price.Mul(decimal.NewFromInt(1).Add(s.cfg.AnnualGrowthRate)).Round(2)
		state.NextGrowthDay += s.cfg.DaysPerYear

		if !gain.IsZero() {
			event := &models.InvestmentEvent{
				SlotID:  state.SlotID,
				Type:    domain.InvestEventGrowth,
				Asset:   "SP500",
				Amount:  gain,
				GameDay: day,
			}
			if err := eventRepo.Append(ctx, event); err != nil {
				return err
			}
			log.Printf("📈 Slot %d: SP500 growth %s on day %d", state.SlotID, gain.String(), day)
		}
	}

	for day >= state.NextDividendDay {
		payout := state.InvestedSp500.Mul(s.cfg.AnnualDividendRate).Round(2)
		state.LiquidCash = state.LiquidCash.Add(payout)
		state.NextDividendDay += s.cfg.DaysPerYear

		if !payout.IsZero() {
			event := &models.InvestmentEvent{
				SlotID:  state.SlotID,
				Type:    domain.InvestEventDividend,
				Asset:   "SP500",
				Amount:  payout,
				GameDay: day,
			}
			if err := eventRepo.Append(ctx, event); err != nil {
				return err
			}
			log.Printf("💰 Slot %d: SP500 dividend %s on day %d", state.SlotID, payout.String(), day)
		}
	}
	return nil
}

// sweepBankruptcies re-evaluates every client of the slot so that a
// grace period can expire even for clients nobody transacts with.
func (s *SimulationService) sweepBankruptcies(ctx context.Context, tx *gorm.DB, slotID int, day int) error {
	clientRepo := s.clientRepo.WithTx(tx)

	clients, err := clientRepo.ListBySlot(ctx, slotID)
	if err != nil {
		return err
	}
	for _, client := range clients {
		if s.bankruptcy.Evaluate(client, float64(day)) {
			if client.Bankrupt {
				log.Printf("🚨 Slot %d: client %d declared bankrupt on day %d", slotID, client.ID, day)
			}
			if err := clientRepo.Update(ctx, client); err != nil {
				return err
			}
		}
	}
	return nil
}

// EvaluateClient applies the bankruptcy rule to one client after a
// balance mutation, using the given fractional game day.
func (s *SimulationService) EvaluateClient(client *models.Client, day float64) bool {
	return s.bankruptcy.Evaluate(client, day)
}

// DB returns the shared transaction runner
func (s *SimulationService) DB() TxRunner {
	return s.db
}

// Config returns the simulation tunables
func (s *SimulationService) Config() config.SimulationConfig {
	return s.cfg
}

// InitSlot ensures a slot has a bank state row, creating a fresh one
// at day zero if missing. Called once per slot at startup.
func (s *SimulationService) InitSlot(ctx context.Context, slotID int) error {
	mu, err := s.lock(slotID)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	_, err = s.bankRepo.GetBySlot(ctx, slotID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.bankRepo.Save(ctx, s.freshState(slotID))
}

// ResetSlot wipes a slot back to its initial state. The optional seed
// callback rebuilds slot-scoped catalog rows inside the same database
// transaction.
func (s *SimulationService) ResetSlot(ctx context.Context, slotID int, seed func(tx *gorm.DB) error) error {
	mu, err := s.lock(slotID)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		clientRepo := s.clientRepo.WithTx(tx)

		clients, err := clientRepo.ListBySlot(ctx, slotID)
		if err != nil {
			return err
		}
		clientIDs := make([]uint, 0, len(clients))
		for _, c := range clients {
			clientIDs = append(clientIDs, c.ID)
		}

		txRepo := repositories.NewTransactionRepository(tx)
		if err := txRepo.DeleteByClients(ctx, clientIDs); err != nil {
			return err
		}
		if err := s.eventRepo.WithTx(tx).DeleteBySlot(ctx, slotID); err != nil {
			return err
		}
		if err := repositories.NewLoanRepository(tx).DeleteBySlot(ctx, slotID); err != nil {
			return err
		}
		if err := repositories.NewMortgageRepository(tx).DeleteBySlot(ctx, slotID); err != nil {
			return err
		}
		if err := repositories.NewLivingRepository(tx).DeleteBySlot(ctx, slotID); err != nil {
			return err
		}
		if err := repositories.NewProductRepository(tx).DeleteBySlot(ctx, slotID); err != nil {
			return err
		}
		if err := clientRepo.DeleteBySlot(ctx, slotID); err != nil {
			return err
		}

		state, err := s.bankRepo.WithTx(tx).GetBySlot(ctx, slotID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		fresh := s.freshState(slotID)
		if state != nil {
			fresh.ID = state.ID
		}
		if err := s.bankRepo.WithTx(tx).Save(ctx, fresh); err != nil {
			return err
		}

		if seed != nil {
			if err := seed(tx); err != nil {
				return err
			}
		}
		log.Printf("🔄 Slot %d reset to initial state", slotID)
		return nil
	})
}

// freshState builds a day-zero bank state from the configured tunables
func (s *SimulationService) freshState(slotID int) *models.BankState {
	return &models.BankState{
		SlotID:          slotID,
		LiquidCash:      s.cfg.StartingCash,
		InvestedSp500:   decimal.Zero,
		Sp500Price:      s.cfg.Sp500InitialPrice,
		MortgageRate:    s.cfg.MortgageAnnualRate,
		GameDay:         0,
		NextDividendDay: s.cfg.DaysPerYear,
		NextGrowthDay:   s.cfg.DaysPerYear,
		LastUpdate:      time.Now(),
	}
}
