package services

import (
	"testing"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankruptcyEvaluate_StampsFirstNegativeDay(t *testing.T) {
	svc := NewBankruptcyService(2)
	client := &models.Client{CheckingBalance: decimal.NewFromInt(-50)}

	changed := svc.Evaluate(client, 5.5)
	assert.True(t, changed)
	require.NotNil(t, client.NegativeSinceDay)
	assert.Equal(t, 5.5, *client.NegativeSinceDay)
	assert.False(t, client.Bankrupt, "grace period has not elapsed yet")
}

func TestBankruptcyEvaluate_FlagsAfterGracePeriod(t *testing.T) {
	svc := NewBankruptcyService(2)
	since := 5.0
	client := &models.Client{
		CheckingBalance:  decimal.NewFromInt(-50),
		NegativeSinceDay: &since,
	}

	// Still inside the grace window: nothing changes.
	assert.False(t, svc.Evaluate(client, 6.9))
	assert.False(t, client.Bankrupt)

	// Two full game days negative tips the client over.
	assert.True(t, svc.Evaluate(client, 7.0))
	assert.True(t, client.Bankrupt)

	// Re-evaluating a bankrupt client is a no-op.
	assert.False(t, svc.Evaluate(client, 9.0))
}

func TestBankruptcyEvaluate_RecoveryClearsFlags(t *testing.T) {
	svc := NewBankruptcyService(2)
	since := 3.0
	client := &models.Client{
		CheckingBalance:  decimal.NewFromInt(100),
		NegativeSinceDay: &since,
		Bankrupt:         true,
	}

	changed := svc.Evaluate(client, 8.0)
	assert.True(t, changed)
	assert.Nil(t, client.NegativeSinceDay)
	assert.False(t, client.Bankrupt)
}

func TestBankruptcyEvaluate_ZeroBalanceIsSolvent(t *testing.T) {
	svc := NewBankruptcyService(2)
	since := 3.0
	client := &models.Client{
		CheckingBalance:  decimal.Zero,
		NegativeSinceDay: &since,
	}

	assert.True(t, svc.Evaluate(client, 4.0))
	assert.Nil(t, client.NegativeSinceDay)
}

func TestBankruptcyEvaluate_SolventClientUnchanged(t *testing.T) {
	svc := NewBankruptcyService(2)
	client := &models.Client{CheckingBalance: decimal.NewFromInt(500)}

	assert.False(t, svc.Evaluate(client, 10.0))
	assert.Nil(t, client.NegativeSinceDay)
	assert.False(t, client.Bankrupt)
}

func TestBankruptcyEvaluate_DipAndRecoverResetsGraceWindow(t *testing.T) {
	svc := NewBankruptcyService(2)
	client := &models.Client{CheckingBalance: decimal.NewFromInt(-10)}

	svc.Evaluate(client, 1.0)
	require.NotNil(t, client.NegativeSinceDay)

	// Back above water: the stamp must clear so a later dip starts a
	// fresh grace window instead of inheriting the old one.
	client.CheckingBalance = decimal.NewFromInt(20)
	svc.Evaluate(client, 1.5)
	require.Nil(t, client.NegativeSinceDay)

	client.CheckingBalance = decimal.NewFromInt(-10)
	svc.Evaluate(client, 4.0)
	require.NotNil(t, client.NegativeSinceDay)
	assert.Equal(t, 4.0, *client.NegativeSinceDay)

	assert.False(t, svc.Evaluate(client, 5.0))
	assert.False(t, client.Bankrupt)
	assert.True(t, svc.Evaluate(client, 6.0))
	assert.True(t, client.Bankrupt)
}
