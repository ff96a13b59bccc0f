package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// Booking service errors
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPackageNotFound    = errors.New("package not found")
	ErrPackageUnavailable = errors.New("package is not available")
	ErrNotBookingOwner    = errors.New("not the booking owner")
	ErrStaffOnly          = errors.New("staff access required")
	ErrBookingCompleted   = errors.New("completed booking cannot be cancelled")
	ErrInvalidStatus      = errors.New("invalid booking status")
)

// BookingService handles the booking lifecycle
type BookingService struct {
	bookingRepo   repositories.BookingRepository
	packageRepo   repositories.PackageRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	packageRepo repositories.PackageRepository,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		packageRepo:   packageRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
	}
}

// CreateBookingInput represents create booking input
type CreateBookingInput struct {
	EventType       string
	EventDate       time.Time
	EventTime       string
	LocationType    string
	Address         string
	PackageID       uint
	GuestCount      int
	PaymentMethod   string
	AdvancePayment  float64
	PaymentRef      string
	ReceiptRef      string
	SpecialRequests string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
}

// CreateBookingResult carries the persisted booking plus the advisory
// WhatsApp handoff link
type CreateBookingResult struct {
	Booking      *models.Booking
	WhatsAppLink string
}

// Create creates a new booking for the authenticated user.
// TotalAmount is a snapshot of the package's discounted price at this instant;
// later package edits never touch existing bookings. Customer fields default
// to the user's profile values when not explicitly supplied.
func (s *BookingService) Create(ctx context.Context, input *CreateBookingInput, userID uint) (*CreateBookingResult, error) {
	// 1. Resolve the package
	pkg, err := s.packageRepo.GetByID(ctx, input.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, ErrPackageUnavailable
	}

	// 2. Resolve the user for the customer snapshot
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:          userID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		EventType:       input.EventType,
		EventDate:       input.EventDate,
		EventTime:       input.EventTime,
		LocationType:    input.LocationType,
		Address:         input.Address,
		PackageID:       pkg.ID,
		GuestCount:      input.GuestCount,
		PaymentMethod:   input.PaymentMethod,
		AdvancePayment:  coerceAmount(input.AdvancePayment),
		PaymentRef:      input.PaymentRef,
		ReceiptRef:      input.ReceiptRef,
		TotalAmount:     pkg.DiscountedPrice(),
		Status:          string(domain.StatusPending),
		SpecialRequests: input.SpecialRequests,
	}

	// 3. Snapshot customer identity from the profile when not supplied
	if booking.CustomerName == "" {
		booking.CustomerName = user.Name
	}
	if booking.CustomerEmail == "" {
		booking.CustomerEmail = user.Email
	}
	if booking.CustomerPhone == "" {
		booking.CustomerPhone = user.Phone
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Package = *pkg

	// 4. Advisory handoff: build the deep link and push if configured.
	// Never blocks or fails the booking.
	link := s.notifyService.BuildBookingLink(booking, pkg)
	go s.notifyService.PushBookingSummary(booking, pkg)

	return &CreateBookingResult{
		Booking:      booking,
		WhatsAppLink: link,
	}, nil
}

// ListBookingsInput represents admin list input
type ListBookingsInput struct {
	Filter repositories.BookingFilter
	Offset int
	Limit  int
}

// List lists all bookings for back-office users
func (s *BookingService) List(ctx context.Context, input *ListBookingsInput, role domain.Role) ([]*models.Booking, int64, error) {
	if !role.IsStaff() {
		return nil, 0, ErrStaffOnly
	}
	return s.bookingRepo.List(ctx, input.Filter, input.Offset, input.Limit)
}

// ListByUser lists the caller's own bookings
func (s *BookingService) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(ctx, userID, offset, limit)
}

// GetByID returns a booking if the caller owns it or is back-office staff
func (s *BookingService) GetByID(ctx context.Context, id, userID uint, role domain.Role) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(userID) && !role.IsStaff() {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

// UpdateStatusInput represents status update input
type UpdateStatusInput struct {
	Status     string
	AdminNotes *string
}

// UpdateStatus sets the booking status and/or admin notes. Admin-only at the
// route level. Transitions are deliberately not validated against the regular
// lifecycle; irregular ones are logged but permitted.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		valid := false
		for _, st := range domain.BookingStatuses() {
			if input.Status == st {
				valid = true
				break
			}
		}
		if !valid {
			return nil, ErrInvalidStatus
		}

		from := domain.BookingStatus(booking.Status)
		to := domain.BookingStatus(input.Status)
		if !domain.CanTransition(from, to) {
			log.Printf("⚠️ Booking #%d: irregular status transition %s → %s", booking.ID, from, to)
		}
		booking.Status = input.Status
	}
	if input.AdminNotes != nil {
		booking.AdminNotes = *input.AdminNotes
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdatePaymentInput represents payment details update input
type UpdatePaymentInput struct {
	PaymentMethod  *string
	AdvancePayment *float64
	PaymentRef     *string
	ReceiptRef     *string
}

// UpdatePayment lets the owner update payment fields on their own booking at
// any time, regardless of status. Advance amounts are coerced to non-negative.
func (s *BookingService) UpdatePayment(ctx context.Context, id, userID uint, input *UpdatePaymentInput) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(userID) {
		return nil, ErrNotBookingOwner
	}

	if input.PaymentMethod != nil {
		booking.PaymentMethod = *input.PaymentMethod
	}
	if input.AdvancePayment != nil {
		booking.AdvancePayment = coerceAmount(*input.AdvancePayment)
	}
	if input.PaymentRef != nil {
		booking.PaymentRef = *input.PaymentRef
	}
	if input.ReceiptRef != nil {
		booking.ReceiptRef = *input.ReceiptRef
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel cancels a booking. Owner or staff may cancel; a completed booking is
// immutable. Cancelling an already-cancelled booking succeeds silently.
func (s *BookingService) Cancel(ctx context.Context, id, userID uint, role domain.Role) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(userID) && role != domain.RoleAdmin {
		return nil, ErrNotBookingOwner
	}
	if booking.Status == string(domain.StatusCompleted) {
		return nil, ErrBookingCompleted
	}
	if booking.Status == string(domain.StatusCancelled) {
		return booking, nil
	}

	booking.Status = string(domain.StatusCancelled)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// RecentBooking is a joined row for the stats overview
type RecentBooking struct {
	ID          uint      `json:"id"`
	UserName    string    `json:"user_name"`
	PackageName string    `json:"package_name"`
	EventType   string    `json:"event_type"`
	EventDate   time.Time `json:"event_date"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatsOverview aggregates all-time booking counters
type StatsOverview struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	CompletedTotal float64          `json:"completed_revenue"`
	Recent         []RecentBooking  `json:"recent"`
}

// Stats returns aggregate counts per status, completed revenue, and the five
// most recent bookings with user/package names joined. Always all-time.
func (s *BookingService) Stats(ctx context.Context, role domain.Role) (*StatsOverview, error) {
	if !role.IsStaff() {
		return nil, ErrStaffOnly
	}

	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	revenue, err := s.bookingRepo.SumCompletedAmount(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.bookingRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	overview := &StatsOverview{
		Total:          total,
		ByStatus:       counts,
		CompletedTotal: revenue,
		Recent:         make([]RecentBooking, 0, len(recent)),
	}
	for _, b := range recent {
		overview.Recent = append(overview.Recent, RecentBooking{
			ID:          b.ID,
			UserName:    b.User.Name,
			PackageName: b.Package.Name,
			EventType:   b.EventType,
			EventDate:   b.EventDate,
			TotalAmount: b.TotalAmount,
			Status:      b.Status,
			CreatedAt:   b.CreatedAt,
		})
	}

	return overview, nil
}

func (s *BookingService) getBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// coerceAmount clamps invalid advance payment values to 0
func coerceAmount(amount float64) float64 {
	if amount < 0 || amount != amount { // negative or NaN
		return 0
	}
	return amount
}
