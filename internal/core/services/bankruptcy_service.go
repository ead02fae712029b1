package services

import (
	"alkicorp-banksim/internal/adapters/persistence/models"
)

// BankruptcyService applies the insolvency rule to a client: a client
// whose checking balance stays negative for a full grace period is
// flagged bankrupt, and the flag clears as soon as the balance is
// restored to zero or above.
type BankruptcyService struct {
	graceDays int
}

// NewBankruptcyService creates a new bankruptcy service
func NewBankruptcyService(graceDays int) *BankruptcyService {
	return &BankruptcyService{graceDays: graceDays}
}

// Evaluate re-checks a client's bankruptcy flags against the current
// game day and mutates the client in place. Returns true if any flag
// changed and the caller should persist the client.
func (s *BankruptcyService) Evaluate(client *models.Client, day float64) bool {
	if !client.CheckingBalance.IsNegative() {
		if client.NegativeSinceDay == nil && !client.Bankrupt {
			return false
		}
		client.NegativeSinceDay = nil
		client.Bankrupt = false
		return true
	}

	if client.NegativeSinceDay == nil {
		since := day
		client.NegativeSinceDay = &since
		return true
	}

	if !client.Bankrupt && day-*client.NegativeSinceDay >= float64(s.graceDays) {
		client.Bankrupt = true
		return true
	}
	return false
}
