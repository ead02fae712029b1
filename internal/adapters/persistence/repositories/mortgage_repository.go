package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// mortgageRepository implements MortgageRepository interface
type mortgageRepository struct {
	db *gorm.DB
}

// NewMortgageRepository creates a new mortgage repository
func NewMortgageRepository(db *gorm.DB) MortgageRepository {
	return &mortgageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *mortgageRepository) WithTx(tx *gorm.DB) MortgageRepository {
	return &mortgageRepository{db: tx}
}

// Create creates a mortgage application
func (r *mortgageRepository) Create(ctx context.Context, mortgage *models.Mortgage) error {
	return r.db.WithContext(ctx).Create(mortgage).Error
}

// GetBySlotAndID gets a mortgage scoped to its slot
func (r *mortgageRepository) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Mortgage, error) {
	var mortgage models.Mortgage
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND id = ?", slotID, id).
		First(&mortgage).Error
	if err != nil {
		return nil, err
	}
	return &mortgage, nil
}

// ListBySlot lists a slot's mortgages newest first
func (r *mortgageRepository) ListBySlot(ctx context.Context, slotID int) ([]*models.Mortgage, error) {
	var mortgages []*models.Mortgage
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("id DESC").
		Find(&mortgages).Error
	return mortgages, err
}

// ListByClient lists a client's mortgages newest first
func (r *mortgageRepository) ListByClient(ctx context.Context, slotID int, clientID uint) ([]*models.Mortgage, error) {
	var mortgages []*models.Mortgage
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND client_id = ?", slotID, clientID).
		Order("id DESC").
		Find(&mortgages).Error
	return mortgages, err
}

// ExistsOpenForProduct reports whether a product already has a
// non-rejected mortgage against it
func (r *mortgageRepository) ExistsOpenForProduct(ctx context.Context, slotID int, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Mortgage{}).
		Where("slot_id = ? AND product_id = ? AND status <> ?", slotID, productID, "REJECTED").
		Count(&count).Error
	return count > 0, err
}

// Update updates a mortgage
func (r *mortgageRepository) Update(ctx context.Context, mortgage *models.Mortgage) error {
	return r.db.WithContext(ctx).Save(mortgage).Error
}

// DeleteBySlot hard-deletes a slot's mortgages (slot reset only)
func (r *mortgageRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Unscoped().Where("slot_id = ?", slotID).Delete(&models.Mortgage{}).Error
}
