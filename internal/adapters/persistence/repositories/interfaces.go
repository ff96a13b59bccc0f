package repositories

import (
	"context"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PackageFilter narrows package listings
type PackageFilter struct {
	Category   string
	EventType  string
	MinPrice   *float64
	MaxPrice   *float64
	ActiveOnly bool
}

// PackageRepository defines package repository interface
type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	GetByID(ctx context.Context, id uint) (*models.Package, error)
	Update(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PackageFilter, offset, limit int) ([]*models.Package, int64, error)
	Featured(ctx context.Context, limit int) ([]*models.Package, error)
}

// BookingFilter narrows admin booking listings
type BookingFilter struct {
	Status    string
	EventType string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context, filter BookingFilter, offset, limit int) ([]*models.Booking, int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Booking, error)
	SumCompletedAmount(ctx context.Context) (float64, error)
}

// InquiryRepository defines inquiry repository interface
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Inquiry, int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
