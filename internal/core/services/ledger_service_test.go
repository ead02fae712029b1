package services

import (
	"context"
	"testing"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdraw_DailyLimitDerivedFromLedger(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Ada",
		CheckingBalance: decimal.NewFromInt(5000),
	})
	svc := NewLedgerService(f.sim, f.clientRepo, f.txRepo)
	ctx := context.Background()

	got, err := svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(got.DailyWithdrawn))

	// A second 600 would put the day at 1200, over the 1000 limit.
	_, err = svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(600))
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)

	// The refused withdrawal left no trace.
	stored, err := f.clientRepo.GetBySlotAndID(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4400).Equal(stored.CheckingBalance),
		"expected 4400, got %s", stored.CheckingBalance)
	entries, total, err := f.txRepo.ListByClient(ctx, client.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, domain.TxWithdrawal, entries[0].Type)

	// Topping up to exactly the limit is still allowed.
	got, err = svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(400))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.DailyWithdrawn))
}

func TestWithdraw_LimitResetsOnNextGameDay(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Ada",
		CheckingBalance: decimal.NewFromInt(5000),
	})
	svc := NewLedgerService(f.sim, f.clientRepo, f.txRepo)
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(900))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(200))
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	// Cross one game day: yesterday's 900 no longer counts.
	f.rewind(1, 1)
	got, err := svc.Withdraw(ctx, 1, client.ID, decimal.NewFromInt(900))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(got.DailyWithdrawn),
		"counter restarts from zero on the new day")
	assert.True(t, decimal.NewFromInt(3200).Equal(got.CheckingBalance))

	entries, total, err := f.txRepo.ListByClient(ctx, client.ID, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	assert.Equal(t, 0, entries[0].GameDay)
	assert.Equal(t, 1, entries[1].GameDay)
}

func TestWithdraw_BankruptClientRefused(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Ada",
		CheckingBalance: decimal.NewFromInt(5000),
		Bankrupt:        true,
	})
	svc := NewLedgerService(f.sim, f.clientRepo, f.txRepo)

	_, err := svc.Withdraw(context.Background(), 1, client.ID, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrClientBankrupt)
}

func TestDeposit_AllowedWhileBankrupt(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	since := 0.0
	client := f.addClient(&models.Client{
		SlotID:           1,
		Name:             "Ada",
		CheckingBalance:  decimal.NewFromInt(-200),
		Bankrupt:         true,
		NegativeSinceDay: &since,
	})
	svc := NewLedgerService(f.sim, f.clientRepo, f.txRepo)

	got, err := svc.Deposit(context.Background(), 1, client.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(got.CheckingBalance))
	assert.False(t, got.Bankrupt, "a positive balance clears the flag")
	assert.Nil(t, got.NegativeSinceDay)
}
