package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// livingRepository implements LivingRepository interface
type livingRepository struct {
	db *gorm.DB
}

// NewLivingRepository creates a new living repository
func NewLivingRepository(db *gorm.DB) LivingRepository {
	return &livingRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *livingRepository) WithTx(tx *gorm.DB) LivingRepository {
	return &livingRepository{db: tx}
}

// GetByClient gets a client's living arrangement, if any
func (r *livingRepository) GetByClient(ctx context.Context, slotID int, clientID uint) (*models.ClientLiving, error) {
	var living models.ClientLiving
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND client_id = ?", slotID, clientID).
		First(&living).Error
	if err != nil {
		return nil, err
	}
	return &living, nil
}

// Save upserts a living arrangement
func (r *livingRepository) Save(ctx context.Context, living *models.ClientLiving) error {
	return r.db.WithContext(ctx).Save(living).Error
}

// DeleteByClient removes a client's living arrangement
func (r *livingRepository) DeleteByClient(ctx context.Context, slotID int, clientID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("slot_id = ? AND client_id = ?", slotID, clientID).
		Delete(&models.ClientLiving{}).Error
}

// DeleteBySlot hard-deletes a slot's living arrangements (slot reset only)
func (r *livingRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Unscoped().Where("slot_id = ?", slotID).Delete(&models.ClientLiving{}).Error
}
