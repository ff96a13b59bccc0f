package services

import (
	"context"
	"errors"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// FeaturedLimit caps the featured package listing
const FeaturedLimit = 6

// PackageService handles catering package management
type PackageService struct {
	packageRepo repositories.PackageRepository
}

// NewPackageService creates a new package service
func NewPackageService(packageRepo repositories.PackageRepository) *PackageService {
	return &PackageService{packageRepo: packageRepo}
}

// CreatePackageInput represents create package input
type CreatePackageInput struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	Category    string
	Features    []string
	EventTypes  []string
	MaxGuests   int
	ImageURL    string
}

// Create creates a new package
func (s *PackageService) Create(ctx context.Context, input *CreatePackageInput) (*models.Package, error) {
	pkg := &models.Package{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Category:    input.Category,
		Features:    input.Features,
		EventTypes:  input.EventTypes,
		MaxGuests:   input.MaxGuests,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// GetByID gets a package by ID
func (s *PackageService) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// UpdatePackageInput represents update package input; nil fields are untouched
type UpdatePackageInput struct {
	Name        *string
	Description *string
	Price       *float64
	Discount    *float64
	Category    *string
	Features    []string
	EventTypes  []string
	MaxGuests   *int
	ImageURL    *string
}

// Update updates a package. The discounted price is derived, never stored, so
// price/discount edits only affect future bookings.
func (s *PackageService) Update(ctx context.Context, id uint, input *UpdatePackageInput) (*models.Package, error) {
	pkg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.Discount != nil {
		pkg.Discount = *input.Discount
	}
	if input.Category != nil {
		pkg.Category = *input.Category
	}
	if input.Features != nil {
		pkg.Features = input.Features
	}
	if input.EventTypes != nil {
		pkg.EventTypes = input.EventTypes
	}
	if input.MaxGuests != nil {
		pkg.MaxGuests = *input.MaxGuests
	}
	if input.ImageURL != nil {
		pkg.ImageURL = *input.ImageURL
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Delete soft deletes a package. Existing bookings keep their snapshot totals.
func (s *PackageService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.packageRepo.Delete(ctx, id)
}

// ToggleActive flips the active flag and returns the new state
func (s *PackageService) ToggleActive(ctx context.Context, id uint) (bool, error) {
	pkg, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	pkg.IsActive = !pkg.IsActive
	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return false, err
	}
	return pkg.IsActive, nil
}

// List lists packages matching the filter with pagination
func (s *PackageService) List(ctx context.Context, filter repositories.PackageFilter, offset, limit int) ([]*models.Package, int64, error) {
	return s.packageRepo.List(ctx, filter, offset, limit)
}

// Featured returns active packages with discount > 0, best discount first
func (s *PackageService) Featured(ctx context.Context) ([]*models.Package, error) {
	return s.packageRepo.Featured(ctx, FeaturedLimit)
}
