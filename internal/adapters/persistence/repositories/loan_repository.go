package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *loanRepository) WithTx(tx *gorm.DB) LoanRepository {
	return &loanRepository{db: tx}
}

// Create creates a loan application
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetBySlotAndID gets a loan scoped to its slot
func (r *loanRepository) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND id = ?", slotID, id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListBySlot lists a slot's loans newest first
func (r *loanRepository) ListBySlot(ctx context.Context, slotID int) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("id DESC").
		Find(&loans).Error
	return loans, err
}

// ListByClient lists a client's loans newest first
func (r *loanRepository) ListByClient(ctx context.Context, slotID int, clientID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND client_id = ?", slotID, clientID).
		Order("id DESC").
		Find(&loans).Error
	return loans, err
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// DeleteBySlot hard-deletes a slot's loans (slot reset only)
func (r *loanRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Unscoped().Where("slot_id = ?", slotID).Delete(&models.Loan{}).Error
}
