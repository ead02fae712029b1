package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// investmentEventRepository implements InvestmentEventRepository interface
type investmentEventRepository struct {
	db *gorm.DB
}

// NewInvestmentEventRepository creates a new investment event repository
func NewInvestmentEventRepository(db *gorm.DB) InvestmentEventRepository {
	return &investmentEventRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *investmentEventRepository) WithTx(tx *gorm.DB) InvestmentEventRepository {
	return &investmentEventRepository{db: tx}
}

// Append appends an investment event
func (r *investmentEventRepository) Append(ctx context.Context, event *models.InvestmentEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListBySlot lists a slot's investment events newest first
func (r *investmentEventRepository) ListBySlot(ctx context.Context, slotID int, limit int) ([]*models.InvestmentEvent, error) {
	var events []*models.InvestmentEvent
	q := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("game_day DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, err
}

// DeleteBySlot hard-deletes a slot's investment events (slot reset only)
func (r *investmentEventRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Where("slot_id = ?", slotID).Delete(&models.InvestmentEvent{}).Error
}
