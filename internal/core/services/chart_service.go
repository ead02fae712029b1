package services

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
)

// ChartService aggregates the dashboard chart series of a slot from
// the client list and the ledger.
type ChartService struct {
	sim        *SimulationService
	clientRepo repositories.ClientRepository
	txRepo     repositories.TransactionRepository
}

// NewChartService creates a new chart service
func NewChartService(
	sim *SimulationService,
	clientRepo repositories.ClientRepository,
	txRepo repositories.TransactionRepository,
) *ChartService {
	return &ChartService{
		sim:        sim,
		clientRepo: clientRepo,
		txRepo:     txRepo,
	}
}

// BalancePoint is one bar of the per-client balance chart
type BalancePoint struct {
	Name            string          `json:"name"`
	CheckingBalance decimal.Decimal `json:"checking_balance"`
	SavingsBalance  decimal.Decimal `json:"savings_balance"`
}

// ActivityPoint is one day of the cumulative money-flow chart
type ActivityPoint struct {
	Day         int             `json:"day"`
	Label       string          `json:"label"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
}

// ClientBalances returns each client's balances, sorted by name
func (s *ChartService) ClientBalances(ctx context.Context, slotID int) ([]*BalancePoint, error) {
	if _, err := s.sim.Advance(ctx, slotID); err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	points := make([]*BalancePoint, 0, len(clients))
	for _, client := range clients {
		points = append(points, &BalancePoint{
			Name:            client.Name,
			CheckingBalance: client.CheckingBalance,
			SavingsBalance:  client.SavingsBalance,
		})
	}
	return points, nil
}

// Activity returns cumulative inflow and outflow per whole game day
// from day zero through the slot's current day.
func (s *ChartService) Activity(ctx context.Context, slotID int) ([]*ActivityPoint, error) {
	state, err := s.sim.Advance(ctx, slotID)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	clientIDs := make([]uint, 0, len(clients))
	for _, c := range clients {
		clientIDs = append(clientIDs, c.ID)
	}

	transactions, err := s.txRepo.ListByClients(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	currentDay := gameclock.WholeDay(state.GameDay)
	inByDay := make(map[int]decimal.Decimal)
	outByDay := make(map[int]decimal.Decimal)
	for _, t := range transactions {
		switch t.Type.Sign() {
		case 1:
			inByDay[t.GameDay] = inByDay[t.GameDay].Add(t.Amount)
		case -1:
			outByDay[t.GameDay] = outByDay[t.GameDay].Add(t.Amount)
		}
	}

	clock := s.sim.Clock()
	points := make([]*ActivityPoint, 0, currentDay+1)
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for day := 0; day <= currentDay; day++ {
		deposits = deposits.Add(inByDay[day])
		withdrawals = withdrawals.Add(outByDay[day])
		d := float64(day)
		points = append(points, &ActivityPoint{
			Day:         day,
			Label:       clock.DateLabel(&d),
			Deposits:    deposits,
			Withdrawals: withdrawals,
		})
	}
	return points, nil
}
