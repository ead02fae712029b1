package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Ledger errors
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLimitExceeded     = errors.New("daily withdrawal limit exceeded")
	ErrClientNotFound    = errors.New("client not found")
	ErrClientBankrupt    = errors.New("client is bankrupt")
)

// Lending errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrMortgageNotFound = errors.New("mortgage not found")
	ErrProductNotFound  = errors.New("property not found")
	ErrInvalidState     = errors.New("application already processed")
	ErrInvalidTerm      = errors.New("term must be between 5 and 30 years")
	ErrPropertyTaken    = errors.New("property is no longer available")
)

// Catalog errors
var (
	ErrJobNotFound    = errors.New("job not found")
	ErrRentalNotFound = errors.New("rental not found")
	ErrSlotNotFound   = errors.New("slot not found")
)

// Validation errors
var (
	ErrValidation       = errors.New("validation failed")
	ErrEmptyClientName  = errors.New("client name must not be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
