package services

import (
	"context"
	"errors"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Inquiry service errors
var (
	ErrInquiryNotFound = errors.New("inquiry not found")
)

// InquiryService handles lead-capture inquiries. Inquiries have no status
// workflow; the cron sweeper removes them after they expire.
type InquiryService struct {
	inquiryRepo repositories.InquiryRepository
	packageRepo repositories.PackageRepository
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(inquiryRepo repositories.InquiryRepository, packageRepo repositories.PackageRepository) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		packageRepo: packageRepo,
	}
}

// CreateInquiryInput represents create inquiry input
type CreateInquiryInput struct {
	Name       string
	Phone      string
	EventDate  time.Time
	GuestCount int
	Location   string
	Notes      string
	PackageID  *uint
}

// Create creates a new inquiry. The package reference is optional; a dangling
// one is dropped rather than rejected since the lead itself is still useful.
func (s *InquiryService) Create(ctx context.Context, input *CreateInquiryInput) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{
		Name:       input.Name,
		Phone:      input.Phone,
		EventDate:  input.EventDate,
		GuestCount: input.GuestCount,
		Location:   input.Location,
		Notes:      input.Notes,
	}

	if input.PackageID != nil {
		if _, err := s.packageRepo.GetByID(ctx, *input.PackageID); err == nil {
			inquiry.PackageID = input.PackageID
		}
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// GetByID gets an inquiry by ID
func (s *InquiryService) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

// List lists inquiries, newest first, with pagination
func (s *InquiryService) List(ctx context.Context, offset, limit int) ([]*models.Inquiry, int64, error) {
	return s.inquiryRepo.List(ctx, offset, limit)
}

// Delete removes an inquiry
func (s *InquiryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.inquiryRepo.Delete(ctx, id)
}

// SweepExpired removes inquiries past their expiry, returning the count
func (s *InquiryService) SweepExpired(ctx context.Context) (int64, error) {
	return s.inquiryRepo.DeleteExpired(ctx, time.Now())
}
