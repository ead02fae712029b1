package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeSign(t *testing.T) {
	credits := []TransactionType{TxDeposit, TxPayrollDeposit, TxLoanDisbursement, TxPropertySale}
	for _, tx := range credits {
		assert.Equal(t, 1, tx.Sign(), "%s should credit holdings", tx)
	}

	debits := []TransactionType{TxWithdrawal, TxMortgageDownPayment, TxMortgageDownPaymentFunding, TxRentDebit}
	for _, tx := range debits {
		assert.Equal(t, -1, tx.Sign(), "%s should debit holdings", tx)
	}

	// Savings transfers shuffle money between the two balances and
	// leave total holdings unchanged.
	assert.Equal(t, 0, TxSavingsDeposit.Sign())
	assert.Equal(t, 0, TxSavingsWithdrawal.Sign())

	assert.Equal(t, 0, TransactionType("UNKNOWN").Sign())
}

func TestLoanStatusTerminal(t *testing.T) {
	assert.False(t, LoanPending.Terminal())
	assert.True(t, LoanApproved.Terminal())
	assert.True(t, LoanRejected.Terminal())
}

func TestMortgageStatusTerminal(t *testing.T) {
	assert.False(t, MortgagePending.Terminal())
	assert.True(t, MortgageAccepted.Terminal())
	assert.True(t, MortgageRejected.Terminal())
}
