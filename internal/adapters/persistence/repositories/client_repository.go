package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *clientRepository) WithTx(tx *gorm.DB) ClientRepository {
	return &clientRepository{db: tx}
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// GetBySlotAndID gets a client scoped to its slot
func (r *clientRepository) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND id = ?", slotID, id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ListBySlot lists all clients of a slot ordered by name
func (r *clientRepository) ListBySlot(ctx context.Context, slotID int) ([]*models.Client, error) {
	var clients []*models.Client
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

// CountBySlot counts the clients owned by a slot
func (r *clientRepository) CountBySlot(ctx context.Context, slotID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Where("slot_id = ?", slotID).Count(&count).Error
	return count, err
}

// ListEmployedBySlot lists clients currently drawing payroll
func (r *clientRepository) ListEmployedBySlot(ctx context.Context, slotID int) ([]*models.Client, error) {
	var clients []*models.Client
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND employment_status = ?", slotID, "ACTIVE").
		Find(&clients).Error
	return clients, err
}

// Update updates a client
func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// ResetDailyWithdrawn zeroes the daily withdrawal counters of a slot
func (r *clientRepository) ResetDailyWithdrawn(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("slot_id = ?", slotID).
		Update("daily_withdrawn", "0.00").Error
}

// DeleteBySlot hard-deletes all clients of a slot (slot reset only)
func (r *clientRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Unscoped().Where("slot_id = ?", slotID).Delete(&models.Client{}).Error
}
