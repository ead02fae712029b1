package config

import (
	"log"

	"alkicorp-banksim/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedCatalogData seeds the shared job and rental catalogs. Catalogs
// are global: every slot reads the same rows, so seeding is skipped
// once they exist.
func SeedCatalogData(db *gorm.DB) error {
	if err := seedJobs(db); err != nil {
		return err
	}
	if err := seedRentals(db); err != nil {
		return err
	}
	return nil
}

func seedJobs(db *gorm.DB) error {
	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count > 0 {
		return nil
	}

	jobs := []models.Job{
		{Title: "Barista", Employer: "Daily Grind Coffee", AnnualSalary: money("28000")},
		{Title: "Retail Associate", Employer: "Midtown Outfitters", AnnualSalary: money("32000")},
		{Title: "Delivery Driver", Employer: "Swift Parcel", AnnualSalary: money("38000")},
		{Title: "Registered Nurse", Employer: "St. Aurelia Hospital", AnnualSalary: money("72000")},
		{Title: "Accountant", Employer: "Ledger & Lane LLP", AnnualSalary: money("84000")},
		{Title: "Software Engineer", Employer: "Nimbus Systems", AnnualSalary: money("120000")},
	}

	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	log.Printf("💼 Seeded %d catalog jobs", len(jobs))
	return nil
}

func seedRentals(db *gorm.DB) error {
	var count int64
	db.Model(&models.Rental{}).Count(&count)
	if count > 0 {
		return nil
	}

	rentals := []models.Rental{
		{Name: "Shared Room, Old Town", MonthlyRent: money("450")},
		{Name: "Studio, Riverside", MonthlyRent: money("780")},
		{Name: "1BR Apartment, Midtown", MonthlyRent: money("1150")},
		{Name: "2BR Apartment, Park View", MonthlyRent: money("1650")},
		{Name: "Townhouse, Maple Grove", MonthlyRent: money("2400")},
	}

	if err := db.Create(&rentals).Error; err != nil {
		return err
	}
	log.Printf("🏠 Seeded %d catalog rentals", len(rentals))
	return nil
}

// SeedSlotProducts seeds the property listings of one slot. Idempotent
// per slot; also used by a slot reset to rebuild its market.
func SeedSlotProducts(db *gorm.DB, slotID int) error {
	var count int64
	db.Model(&models.Product{}).Where("slot_id = ?", slotID).Count(&count)
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{SlotID: slotID, Name: "Compact Condo, Unit 3B", Price: money("95000"), Rooms: 2, Sqft2: 58, ImageURL: "/img/properties/condo-3b.jpg"},
		{SlotID: slotID, Name: "Riverside Bungalow", Price: money("145000"), Rooms: 3, Sqft2: 92, ImageURL: "/img/properties/bungalow.jpg"},
		{SlotID: slotID, Name: "Maple Grove Townhouse", Price: money("210000"), Rooms: 4, Sqft2: 131, ImageURL: "/img/properties/townhouse.jpg"},
		{SlotID: slotID, Name: "Park View Duplex", Price: money("300000"), Rooms: 5, Sqft2: 178, ImageURL: "/img/properties/duplex.jpg"},
		{SlotID: slotID, Name: "Hillcrest Villa", Price: money("485000"), Rooms: 6, Sqft2: 240, ImageURL: "/img/properties/villa.jpg"},
		{SlotID: slotID, Name: "Lakeshore Manor", Price: money("750000"), Rooms: 8, Sqft2: 355, ImageURL: "/img/properties/manor.jpg"},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Printf("🏘️ Seeded %d properties for slot %d", len(products), slotID)
	return nil
}

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
