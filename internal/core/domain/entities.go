package domain

// TransactionType classifies ledger entries
type TransactionType string

const (
	TxDeposit                    TransactionType = "DEPOSIT"
	TxWithdrawal                 TransactionType = "WITHDRAWAL"
	TxSavingsDeposit             TransactionType = "SAVINGS_DEPOSIT"
	TxSavingsWithdrawal          TransactionType = "SAVINGS_WITHDRAWAL"
	TxPayrollDeposit             TransactionType = "PAYROLL_DEPOSIT"
	TxLoanDisbursement           TransactionType = "LOAN_DISBURSEMENT"
	TxMortgageDownPayment        TransactionType = "MORTGAGE_DOWN_PAYMENT"
	TxMortgageDownPaymentFunding TransactionType = "MORTGAGE_DOWN_PAYMENT_FUNDING"
	TxPropertySale               TransactionType = "PROPERTY_SALE"
	TxRentDebit                  TransactionType = "RENT_DEBIT"
)

// Sign returns the contribution of a transaction of this type to the
// client's total holdings (checking + savings). Savings transfers move
// money between the two balances and contribute zero.
func (t TransactionType) Sign() int {
	switch t {
	case TxDeposit, TxPayrollDeposit, TxLoanDisbursement, TxPropertySale:
		return 1
	case TxWithdrawal, TxMortgageDownPayment, TxMortgageDownPaymentFunding, TxRentDebit:
		return -1
	case TxSavingsDeposit, TxSavingsWithdrawal:
		return 0
	}
	return 0
}

// LoanStatus is the loan application state
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed
func (s LoanStatus) Terminal() bool {
	return s == LoanApproved || s == LoanRejected
}

// MortgageStatus is the mortgage application state
type MortgageStatus string

const (
	MortgagePending  MortgageStatus = "PENDING"
	MortgageAccepted MortgageStatus = "ACCEPTED"
	MortgageRejected MortgageStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed
func (s MortgageStatus) Terminal() bool {
	return s == MortgageAccepted || s == MortgageRejected
}

// ProductStatus tracks a property listing's market state
type ProductStatus string

const (
	ProductAvailable ProductStatus = "AVAILABLE"
	ProductOwned     ProductStatus = "OWNED"
)

// EmploymentStatus tracks whether a client draws payroll
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "ACTIVE"
	EmploymentUnemployed EmploymentStatus = "UNEMPLOYED"
)

// LivingType is the client's current housing arrangement
type LivingType string

const (
	LivingRental LivingType = "RENTAL"
	LivingOwned  LivingType = "OWNED"
	LivingNone   LivingType = "NONE"
)

// InvestmentEventType classifies pooled-investment events
type InvestmentEventType string

const (
	InvestEventInvest   InvestmentEventType = "INVEST"
	InvestEventDivest   InvestmentEventType = "DIVEST"
	InvestEventGrowth   InvestmentEventType = "GROWTH"
	InvestEventDividend InvestmentEventType = "DIVIDEND"
)
