package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/middleware"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/pagination"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBookingRequest represents create booking request
type CreateBookingRequest struct {
	EventType       string  `json:"event_type"`
	EventDate       string  `json:"event_date"` // YYYY-MM-DD
	EventTime       string  `json:"event_time,omitempty"`
	LocationType    string  `json:"location_type"`
	Address         string  `json:"address,omitempty"`
	PackageID       uint    `json:"package_id"`
	GuestCount      int     `json:"guest_count,omitempty"`
	PaymentMethod   string  `json:"payment_method"`
	AdvancePayment  float64 `json:"advance_payment,omitempty"`
	PaymentRef      string  `json:"payment_ref,omitempty"`
	ReceiptRef      string  `json:"receipt_ref,omitempty"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	CustomerName    string  `json:"customer_name,omitempty"`
	CustomerEmail   string  `json:"customer_email,omitempty"`
	CustomerPhone   string  `json:"customer_phone,omitempty"`
}

// Create creates a new booking
// @Summary Create booking
// @Description Create a new booking against an active package
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	eventDate, dateErr := time.Parse("2006-01-02", req.EventDate)

	v := validation.New()
	v.Required("event_type", req.EventType)
	v.OneOf("event_type", req.EventType, domain.EventTypes())
	v.Required("event_date", req.EventDate)
	v.Date("event_date", req.EventDate)
	if dateErr == nil {
		v.FutureDate("event_date", eventDate)
	}
	v.TimeOfDay("event_time", req.EventTime)
	v.Required("location_type", req.LocationType)
	v.OneOf("location_type", req.LocationType, domain.LocationTypes())
	v.Required("payment_method", req.PaymentMethod)
	v.OneOf("payment_method", req.PaymentMethod, domain.PaymentMethods())
	v.MinInt("guest_count", req.GuestCount, 1)
	v.MaxLen("special_requests", req.SpecialRequests, 1000)
	v.Email("customer_email", req.CustomerEmail)
	v.Phone("customer_phone", req.CustomerPhone)
	if req.PackageID == 0 {
		v.Required("package_id", "")
	}
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	input := &services.CreateBookingInput{
		EventType:       req.EventType,
		EventDate:       eventDate,
		EventTime:       req.EventTime,
		LocationType:    req.LocationType,
		Address:         req.Address,
		PackageID:       req.PackageID,
		GuestCount:      req.GuestCount,
		PaymentMethod:   req.PaymentMethod,
		AdvancePayment:  req.AdvancePayment,
		PaymentRef:      req.PaymentRef,
		ReceiptRef:      req.ReceiptRef,
		SpecialRequests: req.SpecialRequests,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
	}

	result, err := h.bookingService.Create(c.Context(), input, middleware.PrincipalID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPackageNotFound):
			return response.NotFound(c, "Package not found")
		case errors.Is(err, services.ErrPackageUnavailable):
			return response.BadRequest(c, "Package is not available")
		default:
			return response.InternalServerError(c, "Failed to create booking", err)
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking":       result.Booking.ToResponse(),
		"whatsapp_link": result.WhatsAppLink,
	})
}

// List lists all bookings (staff)
// @Summary List bookings
// @Description List all bookings, filterable by status, event type and date range
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Param status query string false "Filter by status"
// @Param event_type query string false "Filter by event type"
// @Param date_from query string false "Event date from (YYYY-MM-DD)"
// @Param date_to query string false "Event date to (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 25, pagination.MaxLimit)

	filter := repositories.BookingFilter{
		Status:    c.Query("status"),
		EventType: c.Query("event_type"),
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}

	input := &services.ListBookingsInput{
		Filter: filter,
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	bookings, total, err := h.bookingService.List(c.Context(), input, middleware.PrincipalRole(c))
	if err != nil {
		if errors.Is(err, services.ErrStaffOnly) {
			return response.Forbidden(c, "Staff access required")
		}
		return response.InternalServerError(c, "Failed to list bookings", err)
	}

	return response.Paginated(c, "Bookings retrieved successfully",
		toBookingResponses(bookings), pagination.GetMeta(params, len(bookings), total))
}

// MyBookings lists the caller's own bookings
// @Summary List my bookings
// @Description List the authenticated user's bookings, newest first
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /bookings/my-bookings [get]
func (h *BookingHandler) MyBookings(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 10, 50)

	bookings, total, err := h.bookingService.ListByUser(c.Context(), middleware.PrincipalID(c), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings", err)
	}

	return response.Paginated(c, "Bookings retrieved successfully",
		toBookingResponses(bookings), pagination.GetMeta(params, len(bookings), total))
}

// Get fetches one booking
// @Summary Get booking
// @Description Fetch a booking by id (owner or staff)
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking id")
	}

	booking, err := h.bookingService.GetByID(c.Context(), id, middleware.PrincipalID(c), middleware.PrincipalRole(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingOwner):
			return response.Forbidden(c, "You don't have access to this booking")
		default:
			return response.InternalServerError(c, "Failed to get booking", err)
		}
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// UpdateStatusRequest represents status update request
type UpdateStatusRequest struct {
	Status     string  `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

// UpdateStatus changes booking status/notes (admin)
// @Summary Update booking status
// @Description Set booking status and/or admin notes (Admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body UpdateStatusRequest true "Status data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.OneOf("status", req.Status, domain.BookingStatuses())
	if req.AdminNotes != nil {
		v.MaxLen("admin_notes", *req.AdminNotes, 500)
	}
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	booking, err := h.bookingService.UpdateStatus(c.Context(), id, &services.UpdateStatusInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid booking status")
		default:
			return response.InternalServerError(c, "Failed to update booking status", err)
		}
	}

	return response.Success(c, "Booking status updated successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// UpdatePaymentRequest represents payment details update request
type UpdatePaymentRequest struct {
	PaymentMethod  *string  `json:"payment_method,omitempty"`
	AdvancePayment *float64 `json:"advance_payment,omitempty"`
	PaymentRef     *string  `json:"payment_ref,omitempty"`
	ReceiptRef     *string  `json:"receipt_ref,omitempty"`
}

// UpdatePayment updates payment fields on the caller's own booking
// @Summary Update payment details
// @Description Update receipt/reference/method/advance on an owned booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body UpdatePaymentRequest true "Payment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/payment-receipt [put]
func (h *BookingHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking id")
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	if req.PaymentMethod != nil {
		v.Required("payment_method", *req.PaymentMethod)
		v.OneOf("payment_method", *req.PaymentMethod, domain.PaymentMethods())
	}
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	booking, err := h.bookingService.UpdatePayment(c.Context(), id, middleware.PrincipalID(c), &services.UpdatePaymentInput{
		PaymentMethod:  req.PaymentMethod,
		AdvancePayment: req.AdvancePayment,
		PaymentRef:     req.PaymentRef,
		ReceiptRef:     req.ReceiptRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingOwner):
			return response.Forbidden(c, "You can only update your own booking")
		default:
			return response.InternalServerError(c, "Failed to update payment details", err)
		}
	}

	return response.Success(c, "Payment details updated successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// Cancel cancels a booking
// @Summary Cancel booking
// @Description Cancel a booking (owner or admin); completed bookings are immutable
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking id")
	}

	booking, err := h.bookingService.Cancel(c.Context(), id, middleware.PrincipalID(c), middleware.PrincipalRole(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingOwner):
			return response.Forbidden(c, "You can only cancel your own booking")
		case errors.Is(err, services.ErrBookingCompleted):
			return response.BadRequest(c, "Completed booking cannot be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel booking", err)
		}
	}

	return response.Success(c, "Booking cancelled successfully", fiber.Map{
		"booking": booking.ToResponse(),
	})
}

// Stats returns the bookings overview
// @Summary Booking statistics
// @Description Aggregate booking counters and recent bookings (staff)
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /bookings/stats/overview [get]
func (h *BookingHandler) Stats(c *fiber.Ctx) error {
	overview, err := h.bookingService.Stats(c.Context(), middleware.PrincipalRole(c))
	if err != nil {
		if errors.Is(err, services.ErrStaffOnly) {
			return response.Forbidden(c, "Staff access required")
		}
		return response.InternalServerError(c, "Failed to compute statistics", err)
	}

	return response.Success(c, "Statistics retrieved successfully", overview)
}

// parseID extracts the numeric :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func toBookingResponses(bookings []*models.Booking) []*models.BookingResponse {
	out := make([]*models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ToResponse())
	}
	return out
}
