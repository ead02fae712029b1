package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/core/domain"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

// Create creates a product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetBySlotAndID gets a product scoped to its slot
func (r *productRepository) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND id = ?", slotID, id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListBySlot lists all products of a slot
func (r *productRepository) ListBySlot(ctx context.Context, slotID int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("price ASC").
		Find(&products).Error
	return products, err
}

// ListAvailableBySlot lists products still on the market
func (r *productRepository) ListAvailableBySlot(ctx context.Context, slotID int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, domain.ProductAvailable).
		Order("price ASC").
		Find(&products).Error
	return products, err
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteBySlot hard-deletes a slot's products (slot reset only)
func (r *productRepository) DeleteBySlot(ctx context.Context, slotID int) error {
	return r.db.WithContext(ctx).Unscoped().Where("slot_id = ?", slotID).Delete(&models.Product{}).Error
}
