package models

import (
	"testing"

	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(250.75)

	deposit := Transaction{Type: domain.TxDeposit, Amount: amount}
	assert.True(t, deposit.SignedAmount().Equal(amount))

	rent := Transaction{Type: domain.TxRentDebit, Amount: amount}
	assert.True(t, rent.SignedAmount().Equal(amount.Neg()))

	transfer := Transaction{Type: domain.TxSavingsDeposit, Amount: amount}
	assert.True(t, transfer.SignedAmount().IsZero())
}

func TestLedgerReconstruction(t *testing.T) {
	// Replaying the signed ledger must reproduce the client's total
	// holdings from zero. Mirrors the demo scenario shape: payroll and
	// deposits in, rent and withdrawals out, savings moves neutral.
	entries := []Transaction{
		{Type: domain.TxDeposit, Amount: decimal.NewFromInt(1200)},
		{Type: domain.TxPayrollDeposit, Amount: decimal.NewFromFloat(4333.33)},
		{Type: domain.TxSavingsDeposit, Amount: decimal.NewFromInt(800)},
		{Type: domain.TxWithdrawal, Amount: decimal.NewFromFloat(150.25)},
		{Type: domain.TxRentDebit, Amount: decimal.NewFromInt(1400)},
		{Type: domain.TxSavingsWithdrawal, Amount: decimal.NewFromInt(200)},
		{Type: domain.TxLoanDisbursement, Amount: decimal.NewFromInt(5000)},
		{Type: domain.TxMortgageDownPaymentFunding, Amount: decimal.NewFromInt(3000)},
	}

	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].SignedAmount())
	}

	expected := decimal.NewFromFloat(5983.08)
	assert.True(t, total.Equal(expected), "got %s, want %s", total, expected)
}

func TestClientMonthlyDiscretionary(t *testing.T) {
	client := Client{
		MonthlyIncome:    decimal.NewFromInt(5000),
		MonthlyMandatory: decimal.NewFromInt(1800),
	}
	assert.True(t, client.MonthlyDiscretionary().Equal(decimal.NewFromInt(3200)))

	// An obligation above income clamps to zero instead of going negative.
	client.MonthlyMandatory = decimal.NewFromInt(6000)
	assert.True(t, client.MonthlyDiscretionary().IsZero())
}

func TestBankStateTotalAssets(t *testing.T) {
	state := BankState{
		LiquidCash:    decimal.NewFromFloat(750000.50),
		InvestedSp500: decimal.NewFromFloat(249999.50),
	}
	assert.True(t, state.TotalAssets().Equal(decimal.NewFromInt(1000000)))
}

func TestRefreshTokenState(t *testing.T) {
	token := RefreshToken{}
	assert.False(t, token.IsRevoked())

	now := token.CreatedAt
	token.RevokedAt = &now
	assert.True(t, token.IsRevoked())
}
