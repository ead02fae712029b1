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

func newLivingService(f *simFixture) *LivingService {
	return NewLivingService(f.sim, f.clientRepo, f.livingRepo, f.productRepo, f.catalogRepo, f.txRepo, f.bankRepo)
}

func TestSellProperty_ReturnsListingAndFunds(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Cal",
		CheckingBalance: decimal.NewFromInt(25000),
	})
	product := &models.Product{
		SlotID: 1,
		Name:   "Maple Cottage",
		Price:  decimal.NewFromInt(20000),
		Status: domain.ProductAvailable,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	svc := newLivingService(f)
	ctx := context.Background()

	_, err := svc.BuyProperty(ctx, 1, client.ID, product.ID)
	require.NoError(t, err)

	got, err := svc.SellProperty(ctx, 1, client.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductAvailable, got.Status)
	assert.Nil(t, got.OwnerClientID)

	// Buyer and bank both end where they started.
	stored, err := f.clientRepo.GetBySlotAndID(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25000).Equal(stored.CheckingBalance))
	state, err := f.bankRepo.GetBySlot(ctx, 1)
	require.NoError(t, err)
	assert.True(t, f.cfg.StartingCash.Equal(state.LiquidCash))

	// The vacated home leaves no arrangement behind.
	living, err := svc.GetLiving(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LivingNone, living.LivingType)
	assert.True(t, stored.MonthlyMandatory.IsZero())

	entries, total, err := f.txRepo.ListByClient(ctx, client.ID, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	assert.Equal(t, domain.TxMortgageDownPayment, entries[0].Type)
	assert.Equal(t, domain.TxPropertySale, entries[1].Type)
}

func TestSellProperty_PreservesUnrelatedRental(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	client := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Cal",
		CheckingBalance: decimal.NewFromInt(25000),
	})
	product := &models.Product{
		SlotID: 1,
		Name:   "Maple Cottage",
		Price:  decimal.NewFromInt(20000),
		Status: domain.ProductAvailable,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	rent := decimal.NewFromInt(1200)
	f.catalogRepo.rentals = []*models.Rental{{ID: 1, Name: "Downtown Studio", MonthlyRent: rent}}
	svc := newLivingService(f)
	ctx := context.Background()

	// Buy the cottage, then move into a rental instead.
	_, err := svc.BuyProperty(ctx, 1, client.ID, product.ID)
	require.NoError(t, err)
	_, err = svc.SetRental(ctx, 1, client.ID, 1)
	require.NoError(t, err)

	// Selling the cottage must not evict the client from the rental.
	_, err = svc.SellProperty(ctx, 1, client.ID, product.ID)
	require.NoError(t, err)

	living, err := svc.GetLiving(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LivingRental, living.LivingType)
	require.NotNil(t, living.RentalID)
	assert.EqualValues(t, 1, *living.RentalID)
	assert.True(t, rent.Equal(living.MonthlyRent))

	stored, err := f.clientRepo.GetBySlotAndID(ctx, 1, client.ID)
	require.NoError(t, err)
	assert.True(t, rent.Equal(stored.MonthlyMandatory), "rent obligation survives the sale")
	assert.True(t, decimal.NewFromInt(25000).Equal(stored.CheckingBalance))
}

func TestSellProperty_OnlyOwnerCanSell(t *testing.T) {
	f := newSimFixture()
	f.seedSlot(1)
	owner := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Cal",
		CheckingBalance: decimal.NewFromInt(25000),
	})
	other := f.addClient(&models.Client{
		SlotID:          1,
		Name:            "Dee",
		CheckingBalance: decimal.NewFromInt(25000),
	})
	product := &models.Product{
		SlotID: 1,
		Name:   "Maple Cottage",
		Price:  decimal.NewFromInt(20000),
		Status: domain.ProductAvailable,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	svc := newLivingService(f)
	ctx := context.Background()

	_, err := svc.BuyProperty(ctx, 1, owner.ID, product.ID)
	require.NoError(t, err)

	_, err = svc.SellProperty(ctx, 1, other.ID, product.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
