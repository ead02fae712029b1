package services

import (
	"context"
	"testing"

	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestDivest_RoundTripRestoresBalances(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	svc := NewInvestmentService(f.sim, f.bankRepo, f.eventRepo)
	ctx := context.Background()
	amount := decimal.NewFromInt(10000)

	state, err := svc.Invest(ctx, 1, amount)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90000).Equal(state.LiquidCash))
	assert.True(t, amount.Equal(state.InvestedSp500))
	assert.True(t, f.cfg.StartingCash.Equal(state.TotalAssets()),
		"investing moves money, it does not create or destroy it")

	state, err = svc.Divest(ctx, 1, amount)
	require.NoError(t, err)
	assert.True(t, f.cfg.StartingCash.Equal(state.LiquidCash))
	assert.True(t, state.InvestedSp500.IsZero())
	assert.True(t, f.cfg.StartingCash.Equal(state.TotalAssets()))

	events, err := svc.ListEvents(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.InvestEventDivest, events[0].Type)
	assert.Equal(t, domain.InvestEventInvest, events[1].Type)
}

func TestInvest_MoreThanLiquidCashRefused(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	svc := NewInvestmentService(f.sim, f.bankRepo, f.eventRepo)

	_, err := svc.Invest(context.Background(), 1, decimal.NewFromInt(100001))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	state, err := f.bankRepo.GetBySlot(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, f.cfg.StartingCash.Equal(state.LiquidCash), "refusal leaves the state untouched")
	assert.True(t, state.InvestedSp500.IsZero())
}

func TestDivest_MoreThanPositionRefused(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	svc := NewInvestmentService(f.sim, f.bankRepo, f.eventRepo)

	_, err := svc.Divest(context.Background(), 1, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestInvest_NonPositiveAmountRejected(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	svc := NewInvestmentService(f.sim, f.bankRepo, f.eventRepo)

	_, err := svc.Invest(context.Background(), 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.Divest(context.Background(), 1, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
