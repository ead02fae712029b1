package config

import (
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run(slotCount int) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := SeedCatalogData(s.db); err != nil {
		return err
	}
	for slotID := 1; slotID <= slotCount; slotID++ {
		if err := SeedSlotProducts(s.db, slotID); err != nil {
			return err
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@alkicorp.com",
		Password: hashedPassword,
		IsAdmin:  true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("👤 Default admin user created (username: admin)")
	return nil
}
