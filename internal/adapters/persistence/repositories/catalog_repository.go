package repositories

import (
	"context"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// catalogRepository implements CatalogRepository interface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// ListJobs lists all jobs
func (r *catalogRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.WithContext(ctx).Order("annual_salary ASC").Find(&jobs).Error
	return jobs, err
}

// GetJob gets one job
func (r *catalogRepository) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListRentals lists all rentals
func (r *catalogRepository) ListRentals(ctx context.Context) ([]*models.Rental, error) {
	var rentals []*models.Rental
	err := r.db.WithContext(ctx).Order("monthly_rent ASC").Find(&rentals).Error
	return rentals, err
}

// GetRental gets one rental
func (r *catalogRepository) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).First(&rental, id).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}
