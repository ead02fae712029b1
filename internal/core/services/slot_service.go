package services

import (
	"context"
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/config"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/cardgen"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SlotService manages the save slots and the bank-level view of each
type SlotService struct {
	sim         *SimulationService
	bankRepo    repositories.BankStateRepository
	clientRepo  repositories.ClientRepository
	txRepo      repositories.TransactionRepository
	catalogRepo repositories.CatalogRepository
}

// NewSlotService creates a new slot service
func NewSlotService(
	sim *SimulationService,
	bankRepo repositories.BankStateRepository,
	clientRepo repositories.ClientRepository,
	txRepo repositories.TransactionRepository,
	catalogRepo repositories.CatalogRepository,
) *SlotService {
	return &SlotService{
		sim:         sim,
		bankRepo:    bankRepo,
		clientRepo:  clientRepo,
		txRepo:      txRepo,
		catalogRepo: catalogRepo,
	}
}

// SlotSummary is the save-slot picker view of one slot
type SlotSummary struct {
	SlotID      int             `json:"slot_id"`
	GameDay     float64         `json:"game_day"`
	DateLabel   string          `json:"date_label"`
	ClientCount int64           `json:"client_count"`
	TotalAssets decimal.Decimal `json:"total_assets"`
	HasData     bool            `json:"has_data"`
}

// BankSnapshot is the bank dashboard view of one slot
type BankSnapshot struct {
	SlotID            int             `json:"slot_id"`
	LiquidCash        decimal.Decimal `json:"liquid_cash"`
	InvestedSp500     decimal.Decimal `json:"invested_sp500"`
	TotalAssets       decimal.Decimal `json:"total_assets"`
	Sp500Price        decimal.Decimal `json:"sp500_price"`
	MortgageRate      decimal.Decimal `json:"mortgage_rate"`
	GameDay           float64         `json:"game_day"`
	DateLabel         string          `json:"date_label"`
	NextGrowthLabel   string          `json:"next_growth_label"`
	NextDividendLabel string          `json:"next_dividend_label"`
}

// ListSlots returns summaries of every slot, clocks freshly advanced
func (s *SlotService) ListSlots(ctx context.Context) ([]*SlotSummary, error) {
	clock := s.sim.Clock()
	summaries := make([]*SlotSummary, 0, s.sim.SlotCount())

	for slotID := 1; slotID <= s.sim.SlotCount(); slotID++ {
		state, err := s.sim.Advance(ctx, slotID)
		if err != nil {
			return nil, err
		}
		count, err := s.clientRepo.CountBySlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		day := state.GameDay
		summaries = append(summaries, &SlotSummary{
			SlotID:      slotID,
			GameDay:     day,
			DateLabel:   clock.DateLabel(&day),
			ClientCount: count,
			TotalAssets: state.TotalAssets(),
			HasData:     day > 0 || count > 0,
		})
	}
	return summaries, nil
}

// GetBank returns the bank dashboard snapshot of one slot
func (s *SlotService) GetBank(ctx context.Context, slotID int) (*BankSnapshot, error) {
	state, err := s.sim.Advance(ctx, slotID)
	if err != nil {
		return nil, err
	}
	clock := s.sim.Clock()
	day := state.GameDay
	growthDay := float64(state.NextGrowthDay)
	dividendDay := float64(state.NextDividendDay)

	return &BankSnapshot{
		SlotID:            slotID,
		LiquidCash:        state.LiquidCash,
		InvestedSp500:     state.InvestedSp500,
		TotalAssets:       state.TotalAssets(),
		Sp500Price:        state.Sp500Price,
		MortgageRate:      state.MortgageRate,
		GameDay:           day,
		DateLabel:         clock.DateLabel(&day),
		NextGrowthLabel:   clock.DateLabel(&growthDay),
		NextDividendLabel: clock.DateLabel(&dividendDay),
	}, nil
}

// ResetSlot wipes a slot back to day zero with a fresh property market
func (s *SlotService) ResetSlot(ctx context.Context, slotID int) error {
	return s.sim.ResetSlot(ctx, slotID, func(tx *gorm.DB) error {
		return config.SeedSlotProducts(tx, slotID)
	})
}

// demo dataset for the showcase slot
var demoClients = []struct {
	name     string
	jobTitle string
}{
	{"Marcus Reed", "Software Engineer"},
	{"Elena Vasquez", "Registered Nurse"},
	{"Tom Okafor", "Accountant"},
	{"Priya Shah", "Barista"},
	{"Liam Bennett", ""},
}

var demoEntries = []struct {
	client int
	txType domain.TransactionType
	amount string
}{
	{0, domain.TxDeposit, "5200.00"},
	{0, domain.TxWithdrawal, "300.00"},
	{0, domain.TxSavingsDeposit, "1500.00"},
	{1, domain.TxDeposit, "3100.00"},
	{1, domain.TxDeposit, "850.00"},
	{1, domain.TxWithdrawal, "120.00"},
	{2, domain.TxDeposit, "7600.00"},
	{2, domain.TxSavingsDeposit, "2000.00"},
	{2, domain.TxWithdrawal, "450.00"},
	{3, domain.TxDeposit, "980.00"},
	{3, domain.TxWithdrawal, "75.00"},
	{4, domain.TxDeposit, "250.00"},
	{4, domain.TxDeposit, "410.00"},
	{4, domain.TxWithdrawal, "90.00"},
}

// SeedDemo resets a slot and fills it with the showcase dataset: a
// handful of named clients with jobs, balances and ledger history.
func (s *SlotService) SeedDemo(ctx context.Context, slotID int) error {
	if err := s.ResetSlot(ctx, slotID); err != nil {
		return err
	}

	return s.sim.WithSlot(ctx, slotID, func(state *models.BankState) error {
		return s.sim.DB().Transaction(func(tx *gorm.DB) error {
			jobs, err := s.catalogRepo.ListJobs(ctx)
			if err != nil {
				return err
			}
			jobByTitle := make(map[string]*models.Job, len(jobs))
			for _, job := range jobs {
				jobByTitle[job.Title] = job
			}

			clientRepo := s.clientRepo.WithTx(tx)
			txRepo := s.txRepo.WithTx(tx)

			created := make([]*models.Client, 0, len(demoClients))
			for _, dc := range demoClients {
				card := cardgen.Generate()
				client := &models.Client{
					SlotID:           slotID,
					Name:             dc.name,
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
				if job, ok := jobByTitle[dc.jobTitle]; ok {
					client.EmploymentStatus = domain.EmploymentActive
					client.JobID = &job.ID
					client.MonthlyIncome = job.AnnualSalary.DivRound(decimal.NewFromInt(12), 2)
				}
				if err := clientRepo.Create(ctx, client); err != nil {
					return err
				}
				created = append(created, client)
			}

			day := gameclock.WholeDay(state.GameDay)
			for _, de := range demoEntries {
				amount, _ := decimal.NewFromString(de.amount)
				client := created[de.client]

				switch de.txType {
				case domain.TxDeposit:
					client.CheckingBalance = client.CheckingBalance.Add(amount)
				case domain.TxWithdrawal:
					client.CheckingBalance = client.CheckingBalance.Sub(amount)
				case domain.TxSavingsDeposit:
					client.CheckingBalance = client.CheckingBalance.Sub(amount)
					client.SavingsBalance = client.SavingsBalance.Add(amount)
				}

				entry := &models.Transaction{
					ClientID: client.ID,
					Type:     de.txType,
					Amount:   amount,
					GameDay:  day,
				}
				if err := txRepo.Append(ctx, entry); err != nil {
					return err
				}
			}
			for _, client := range created {
				if err := clientRepo.Update(ctx, client); err != nil {
					return err
				}
			}

			log.Printf("🌱 Slot %d: demo dataset seeded (%d clients, %d transactions)", slotID, len(created), len(demoEntries))
			return nil
		})
	})
}
