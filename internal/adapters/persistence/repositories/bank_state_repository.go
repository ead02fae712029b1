package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bankStateRepository implements BankStateRepository interface
type bankStateRepository struct {
	db *gorm.DB
}

// NewBankStateRepository creates a new bank state repository
func NewBankStateRepository(db *gorm.DB) BankStateRepository {
	return &bankStateRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *bankStateRepository) WithTx(tx *gorm.DB) BankStateRepository {
	return &bankStateRepository{db: tx}
}

// GetBySlot gets the bank state for a slot
func (r *bankStateRepository) GetBySlot(ctx context.Context, slotID int) (*models.BankState, error) {
	var state models.BankState
	err := r.db.WithContext(ctx).Where("slot_id = ?", slotID).First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Save upserts a bank state row
func (r *bankStateRepository) Save(ctx context.Context, state *models.BankState) error {
	return r.db.WithContext(ctx).Save(state).Error
}
