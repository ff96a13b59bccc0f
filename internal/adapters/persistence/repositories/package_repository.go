package repositories

import (
	"context"
	"fmt"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// packageRepository implements PackageRepository interface
type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

// Create creates a new package
func (r *packageRepository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// GetByID gets a package by ID
func (r *packageRepository) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Update updates a package
func (r *packageRepository) Update(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

// Delete soft deletes a package
func (r *packageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Package{}, id).Error
}

// List lists packages matching the filter with pagination
func (r *packageRepository) List(ctx context.Context, filter PackageFilter, offset, limit int) ([]*models.Package, int64, error) {
	var packages []*models.Package
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Package{})
	query = applyPackageFilter(query, filter)

	query.Count(&total)

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&packages).Error

	return packages, total, err
}

// Featured returns active packages with a discount, best discount first
func (r *packageRepository) Featured(ctx context.Context, limit int) ([]*models.Package, error) {
	var packages []*models.Package
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND discount > 0", true).
		Order("discount DESC, created_at DESC").
		Limit(limit).
		Find(&packages).Error
	return packages, err
}

func applyPackageFilter(query *gorm.DB, filter PackageFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.EventType != "" {
		// event_types is a JSON array column; match the quoted tag
		query = query.Where("event_types LIKE ?", fmt.Sprintf(`%%"%s"%%`, filter.EventType))
	}
	return query
}
