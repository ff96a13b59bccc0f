package config

import (
	"log"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/password"

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
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedPackages(); err != nil {
		log.Printf("⚠️ Package seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:       "Administrator",
		Email:      "admin@lyancatering.com",
		Password:   hashedPassword,
		Role:       string(domain.RoleAdmin),
		IsVerified: true,
		IsActive:   true,
	}

	return s.db.Create(admin).Error
}

// seedPackages seeds a starter set of catering packages
func (s *Seeder) seedPackages() error {
	var count int64
	s.db.Model(&models.Package{}).Count(&count)
	if count > 0 {
		return nil // Packages already exist
	}

	packages := []models.Package{
		{
			Name:        "Essential Buffet",
			Description: "Traditional dishes for intimate gatherings",
			Price:       15000,
			Discount:    0,
			Category:    string(domain.CategoryBasic),
			Features:    []string{"Buffet service", "Soft drinks", "Setup and cleanup"},
			EventTypes:  []string{string(domain.EventBirthday), string(domain.EventGraduation), string(domain.EventOther)},
			MaxGuests:   50,
			IsActive:    true,
		},
		{
			Name:        "Classic Celebration",
			Description: "Full-course menu with dessert table",
			Price:       35000,
			Discount:    5,
			Category:    string(domain.CategoryStandard),
			Features:    []string{"Full-course menu", "Dessert table", "Waiter service", "Decor"},
			EventTypes:  []string{string(domain.EventWedding), string(domain.EventEngagement), string(domain.EventBirthday)},
			MaxGuests:   150,
			IsActive:    true,
		},
		{
			Name:        "Premium Wedding",
			Description: "Signature wedding experience with live cooking stations",
			Price:       80000,
			Discount:    10,
			Category:    string(domain.CategoryPremium),
			Features:    []string{"Live cooking stations", "Premium decor", "Dedicated coordinator", "Cake"},
			EventTypes:  []string{string(domain.EventWedding), string(domain.EventEngagement)},
			MaxGuests:   400,
			IsActive:    true,
		},
		{
			Name:        "Corporate Catering",
			Description: "Professional catering for meetings and company events",
			Price:       25000,
			Discount:    0,
			Category:    string(domain.CategoryStandard),
			Features:    []string{"Coffee break service", "Lunch buffet", "Branded setup"},
			EventTypes:  []string{string(domain.EventCorporate)},
			MaxGuests:   200,
			IsActive:    true,
		},
	}

	return s.db.Create(&packages).Error
}
