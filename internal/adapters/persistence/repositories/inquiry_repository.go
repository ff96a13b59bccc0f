package repositories

import (
	"context"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inquiryRepository implements InquiryRepository interface
type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// Create creates a new inquiry
func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// GetByID gets an inquiry by ID with its package expanded
func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).Preload("Package").First(&inquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// Delete hard deletes an inquiry
func (r *inquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Inquiry{}, id).Error
}

// List lists inquiries, newest first, with pagination
func (r *inquiryRepository) List(ctx context.Context, offset, limit int) ([]*models.Inquiry, int64, error) {
	var inquiries []*models.Inquiry
	var total int64

	r.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Package").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&inquiries).Error

	return inquiries, total, err
}

// DeleteExpired removes inquiries past their expiry, returning the count
func (r *inquiryRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.Inquiry{})
	return result.RowsAffected, result.Error
}
