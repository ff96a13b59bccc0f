package repositories

import (
	"context"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID with package and user expanded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// List lists bookings matching the filter, newest first, with pagination
func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.DateFrom != nil {
		query = query.Where("event_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("event_date <= ?", *filter.DateTo)
	}

	query.Count(&total)

	err := query.
		Preload("Package").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error

	return bookings, total, err
}

// ListByUser lists a user's bookings, newest first, with pagination
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error

	return bookings, total, err
}

// CountByStatus returns booking counts keyed by status
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, s := range domain.BookingStatuses() {
		counts[s] = 0
	}
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// Recent returns the most recent bookings with user and package expanded
func (r *bookingRepository) Recent(ctx context.Context, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// SumCompletedAmount returns the total amount of completed bookings
func (r *bookingRepository) SumCompletedAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
