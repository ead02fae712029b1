package services

import (
	"context"
	"testing"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_PayrollAndRentNetOutToZero(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:           1,
		Name:             "Bea",
		CheckingBalance:  decimal.NewFromInt(500),
		EmploymentStatus: domain.EmploymentActive,
		MonthlyIncome:    decimal.NewFromInt(3000),
		MonthlyMandatory: decimal.NewFromInt(3000),
	})
	ctx := context.Background()

	f.rewind(1, 1)
	state, err := f.sim.Advance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, gameclock.WholeDay(state.GameDay))

	// Salary in, rent out: the balance must land where it started.
	stored, err := f.clientRepo.GetBySlotAndID(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(stored.CheckingBalance),
		"expected 500, got %s", stored.CheckingBalance)

	entries, total, err := f.txRepo.ListByClient(ctx, client.ID, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	assert.Equal(t, domain.TxPayrollDeposit, entries[0].Type)
	assert.Equal(t, domain.TxRentDebit, entries[1].Type)

	net := decimal.Zero
	for _, e := range entries {
		assert.Equal(t, 1, e.GameDay)
		net = net.Add(e.SignedAmount())
	}
	assert.True(t, net.IsZero(), "ledger records the day as a wash")
}

func TestAdvance_ReplaysEveryMissedDay(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:           1,
		Name:             "Bea",
		CheckingBalance:  decimal.NewFromInt(100),
		EmploymentStatus: domain.EmploymentActive,
		MonthlyIncome:    decimal.NewFromInt(3000),
	})
	ctx := context.Background()

	// Nobody touched the slot for three game days.
	f.rewind(1, 3)
	state, err := f.sim.Advance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, gameclock.WholeDay(state.GameDay))

	stored, err := f.clientRepo.GetBySlotAndID(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9100).Equal(stored.CheckingBalance),
		"three paydays replayed, got %s", stored.CheckingBalance)

	entries, total, err := f.txRepo.ListByClient(ctx, client.ID, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	for i, e := range entries {
		assert.Equal(t, domain.TxPayrollDeposit, e.Type)
		assert.Equal(t, i+1, e.GameDay, "each boundary stamped with its own day")
	}
}

func TestAdvance_YearBoundaryGrowthThenDividend(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	f.bankRepo.states[1].InvestedSp500 = decimal.NewFromInt(10000)
	ctx := context.Background()

	f.rewind(1, 12)
	state, err := f.sim.Advance(ctx, 1)
	require.NoError(t, err)

	// Growth applies first, so the dividend pays on the grown position.
	assert.True(t, decimal.NewFromInt(11000).Equal(state.InvestedSp500),
		"10%% growth on 10000, got %s", state.InvestedSp500)
	assert.True(t, decimal.NewFromInt(110).Equal(state.Sp500Price))
	assert.True(t, decimal.NewFromInt(100220).Equal(state.LiquidCash),
		"2%% dividend on 11000, got %s", state.LiquidCash)
	assert.Equal(t, 24, state.NextGrowthDay)
	assert.Equal(t, 24, state.NextDividendDay)

	events, err := f.eventRepo.ListBySlot(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.InvestEventDividend, events[0].Type)
	assert.True(t, decimal.NewFromInt(220).Equal(events[0].Amount))
	assert.Equal(t, domain.InvestEventGrowth, events[1].Type)
	assert.True(t, decimal.NewFromInt(1000).Equal(events[1].Amount))
	assert.Equal(t, 12, events[0].GameDay)
	assert.Equal(t, 12, events[1].GameDay)
}

func TestAdvance_UnknownSlotRejected(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)

	_, err := f.sim.Advance(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	// Configured but never initialized counts as missing too.
	_, err = f.sim.Advance(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}
