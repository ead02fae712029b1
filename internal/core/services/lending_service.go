package services

import (
	"context"
	"errors"
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/finance"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan term bounds in years
const (
	MinTermYears = 5
	MaxTermYears = 30
)

// LendingService handles unsecured loans and property mortgages. Both
// follow a PENDING -> APPROVED/ACCEPTED | REJECTED lifecycle; decided
// applications are terminal.
type LendingService struct {
	sim          *SimulationService
	clientRepo   repositories.ClientRepository
	loanRepo     repositories.LoanRepository
	mortgageRepo repositories.MortgageRepository
	productRepo  repositories.ProductRepository
	livingRepo   repositories.LivingRepository
	txRepo       repositories.TransactionRepository
	bankRepo     repositories.BankStateRepository
}

// NewLendingService creates a new lending service
func NewLendingService(
	sim *SimulationService,
	clientRepo repositories.ClientRepository,
	loanRepo repositories.LoanRepository,
	mortgageRepo repositories.MortgageRepository,
	productRepo repositories.ProductRepository,
	livingRepo repositories.LivingRepository,
	txRepo repositories.TransactionRepository,
	bankRepo repositories.BankStateRepository,
) *LendingService {
	return &LendingService{
		sim:          sim,
		clientRepo:   clientRepo,
		loanRepo:     loanRepo,
		mortgageRepo: mortgageRepo,
		productRepo:  productRepo,
		livingRepo:   livingRepo,
		txRepo:       txRepo,
		bankRepo:     bankRepo,
	}
}

// ApplyLoanInput represents a loan application
type ApplyLoanInput struct {
	ClientID  uint            `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	TermYears int             `json:"term_years"`
}

// ApplyMortgageInput represents a mortgage application
type ApplyMortgageInput struct {
	ClientID    uint            `json:"client_id"`
	ProductID   uint            `json:"product_id"`
	DownPayment decimal.Decimal `json:"down_payment"`
	TermYears   int             `json:"term_years"`
}

// ApplyLoan files an unsecured loan application in PENDING state
func (s *LendingService) ApplyLoan(ctx context.Context, slotID int, input *ApplyLoanInput) (*models.Loan, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.TermYears < MinTermYears || input.TermYears > MaxTermYears {
		return nil, domain.ErrInvalidTerm
	}

	var loan *models.Loan
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		client, err := s.clientRepo.GetBySlotAndID(ctx, slotID, input.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClientNotFound
			}
			return err
		}
		if client.Bankrupt {
			return domain.ErrClientBankrupt
		}
		loan = &models.Loan{
			SlotID:    slotID,
			ClientID:  client.ID,
			Amount:    input.Amount,
			TermYears: input.TermYears,
			Status:    domain.LoanPending,
		}
		return s.loanRepo.Create(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ListLoans returns a slot's loans, optionally filtered by client
func (s *LendingService) ListLoans(ctx context.Context, slotID int, clientID uint) ([]*models.Loan, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	if clientID > 0 {
		return s.loanRepo.ListByClient(ctx, slotID, clientID)
	}
	return s.loanRepo.ListBySlot(ctx, slotID)
}

// ApproveLoan approves a pending loan and disburses its amount from
// the bank's liquid cash into the client's checking account.
func (s *LendingService) ApproveLoan(ctx context.Context, slotID int, loanID uint) (*models.Loan, error) {
	var loan *models.Loan
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			var err error
			loan, err = s.loanRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, loanID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrLoanNotFound
				}
				return err
			}
			if loan.Status.Terminal() {
				return domain.ErrInvalidState
			}
			if state.LiquidCash.LessThan(loan.Amount) {
				return domain.ErrInsufficientFunds
			}

			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, loan.ClientID)
			if err != nil {
				return err
			}
			client.CheckingBalance = client.CheckingBalance.Add(loan.Amount)
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}

			entry := &models.Transaction{
				ClientID: client.ID,
				Type:     domain.TxLoanDisbursement,
				Amount:   loan.Amount,
				GameDay:  gameclock.WholeDay(state.GameDay),
			}
			if err := s.txRepo.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}

			state.LiquidCash = state.LiquidCash.Sub(loan.Amount)
			if err := s.bankRepo.WithTx(tx).Save(ctx, state); err != nil {
				return err
			}

			loan.Status = domain.LoanApproved
			return s.loanRepo.WithTx(tx).Update(ctx, loan)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Slot %d: loan %d approved for %s", slotID, loan.ID, loan.Amount.String())
	return loan, nil
}

// RejectLoan rejects a pending loan; no money moves
func (s *LendingService) RejectLoan(ctx context.Context, slotID int, loanID uint) (*models.Loan, error) {
	var loan *models.Loan
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		var err error
		loan, err = s.loanRepo.GetBySlotAndID(ctx, slotID, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}
		if loan.Status.Terminal() {
			return domain.ErrInvalidState
		}
		loan.Status = domain.LoanRejected
		return s.loanRepo.Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ApplyMortgage files a mortgage application against an available
// property. The interest rate is snapshotted from the slot's bank
// state and the amortized monthly payment is fixed at application
// time.
func (s *LendingService) ApplyMortgage(ctx context.Context, slotID int, input *ApplyMortgageInput) (*models.Mortgage, error) {
	if input.DownPayment.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.TermYears < MinTermYears || input.TermYears > MaxTermYears {
		return nil, domain.ErrInvalidTerm
	}

	var mortgage *models.Mortgage
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		client, err := s.clientRepo.GetBySlotAndID(ctx, slotID, input.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClientNotFound
			}
			return err
		}
		if client.Bankrupt {
			return domain.ErrClientBankrupt
		}

		product, err := s.productRepo.GetBySlotAndID(ctx, slotID, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}
		if product.Status != domain.ProductAvailable {
			return domain.ErrPropertyTaken
		}
		if input.DownPayment.GreaterThan(product.Price) {
			return domain.ErrInvalidAmount
		}

		open, err := s.mortgageRepo.ExistsOpenForProduct(ctx, slotID, product.ID)
		if err != nil {
			return err
		}
		if open {
			return domain.ErrPropertyTaken
		}

		loanAmount := product.Price.Sub(input.DownPayment)
		payment := finance.MonthlyPayment(loanAmount, state.MortgageRate, input.TermYears)
		mortgage = &models.Mortgage{
			SlotID:         slotID,
			ClientID:       client.ID,
			ProductID:      product.ID,
			PropertyPrice:  product.Price,
			DownPayment:    input.DownPayment,
			LoanAmount:     loanAmount,
			TermYears:      input.TermYears,
			InterestRate:   state.MortgageRate,
			MonthlyPayment: &payment,
			Status:         domain.MortgagePending,
		}
		return s.mortgageRepo.Create(ctx, mortgage)
	})
	if err != nil {
		return nil, err
	}
	return mortgage, nil
}

// ListMortgages returns a slot's mortgages, optionally filtered by client
func (s *LendingService) ListMortgages(ctx context.Context, slotID int, clientID uint) ([]*models.Mortgage, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	if clientID > 0 {
		return s.mortgageRepo.ListByClient(ctx, slotID, clientID)
	}
	return s.mortgageRepo.ListBySlot(ctx, slotID)
}

// AcceptMortgage accepts a pending mortgage: the down payment is
// debited, the property changes hands, and the amortized monthly
// payment becomes the client's living obligation.
func (s *LendingService) AcceptMortgage(ctx context.Context, slotID int, mortgageID uint) (*models.Mortgage, error) {
	var mortgage *models.Mortgage
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			var err error
			mortgage, err = s.mortgageRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, mortgageID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrMortgageNotFound
				}
				return err
			}
			if mortgage.Status.Terminal() {
				return domain.ErrInvalidState
			}

			client, err := s.clientRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, mortgage.ClientID)
			if err != nil {
				return err
			}
			if client.Bankrupt {
				return domain.ErrClientBankrupt
			}
			if client.CheckingBalance.LessThan(mortgage.DownPayment) {
				return domain.ErrInsufficientFunds
			}

			product, err := s.productRepo.WithTx(tx).GetBySlotAndID(ctx, slotID, mortgage.ProductID)
			if err != nil {
				return err
			}
			if product.Status != domain.ProductAvailable {
				return domain.ErrPropertyTaken
			}

			if mortgage.DownPayment.IsPositive() {
				client.CheckingBalance = client.CheckingBalance.Sub(mortgage.DownPayment)
				entry := &models.Transaction{
					ClientID: client.ID,
					Type:     domain.TxMortgageDownPaymentFunding,
					Amount:   mortgage.DownPayment,
					GameDay:  gameclock.WholeDay(state.GameDay),
				}
				if err := s.txRepo.WithTx(tx).Append(ctx, entry); err != nil {
					return err
				}
			}

			product.Status = domain.ProductOwned
			product.OwnerClientID = &client.ID
			if err := s.productRepo.WithTx(tx).Update(ctx, product); err != nil {
				return err
			}

			payment := mortgage.MonthlyPayment
			if payment == nil {
				p := finance.MonthlyPayment(mortgage.LoanAmount, mortgage.InterestRate, mortgage.TermYears)
				payment = &p
				mortgage.MonthlyPayment = payment
			}

			livingRepo := s.livingRepo.WithTx(tx)
			living, err := livingRepo.GetByClient(ctx, slotID, client.ID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				living = &models.ClientLiving{SlotID: slotID, ClientID: client.ID}
			}
			living.LivingType = domain.LivingOwned
			living.RentalID = nil
			living.ProductID = &product.ID
			living.MonthlyRent = *payment
			if err := livingRepo.Save(ctx, living); err != nil {
				return err
			}

			client.MonthlyMandatory = *payment
			client.LastActivityDay = state.GameDay
			s.sim.EvaluateClient(client, state.GameDay)
			if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
				return err
			}

			// The bank pockets the down payment on its own listing
			state.LiquidCash = state.LiquidCash.Add(mortgage.DownPayment)
			if err := s.bankRepo.WithTx(tx).Save(ctx, state); err != nil {
				return err
			}

			mortgage.Status = domain.MortgageAccepted
			return s.mortgageRepo.WithTx(tx).Update(ctx, mortgage)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Slot %d: mortgage %d accepted", slotID, mortgage.ID)
	return mortgage, nil
}

// RejectMortgage rejects a pending mortgage; no money moves
func (s *LendingService) RejectMortgage(ctx context.Context, slotID int, mortgageID uint) (*models.Mortgage, error) {
	var mortgage *models.Mortgage
	err := s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		var err error
		mortgage, err = s.mortgageRepo.GetBySlotAndID(ctx, slotID, mortgageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMortgageNotFound
			}
			return err
		}
		if mortgage.Status.Terminal() {
			return domain.ErrInvalidState
		}
		mortgage.Status = domain.MortgageRejected
		return s.mortgageRepo.Update(ctx, mortgage)
	})
	if err != nil {
		return nil, err
	}
	return mortgage, nil
}
