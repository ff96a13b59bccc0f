package handlers

import (
	"errors"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/pagination"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// InquiryHandler handles pre-booking inquiry HTTP requests
type InquiryHandler struct {
	inquiryService *services.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiryRequest represents the inquiry submission payload
type CreateInquiryRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	EventDate  string `json:"event_date"`
	GuestCount int    `json:"guest_count"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	PackageID  *uint  `json:"package_id"`
}

// Create godoc
// @Summary Submit an inquiry
// @Description Records a pre-booking lead. No account is required.
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body CreateInquiryRequest true "Inquiry data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inquiries [post]
func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	var req CreateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// 1. Validate input
	v := validation.New()
	v.Required("name", req.Name).MaxLen("name", req.Name, 100)
	if req.Phone != "" {
		v.Phone("phone", req.Phone)
	}
	v.Required("event_date", req.EventDate).Date("event_date", req.EventDate)
	v.MinInt("guest_count", req.GuestCount, 0)
	v.MaxLen("notes", req.Notes, 1000)
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	eventDate, _ := time.Parse("2006-01-02", req.EventDate)

	// 2. Record the lead
	inquiry, err := h.inquiryService.Create(c.Context(), &services.CreateInquiryInput{
		Name:       req.Name,
		Phone:      req.Phone,
		EventDate:  eventDate,
		GuestCount: req.GuestCount,
		Location:   req.Location,
		Notes:      req.Notes,
		PackageID:  req.PackageID,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to submit inquiry", err)
	}

	return response.Created(c, "Inquiry submitted successfully", inquiry)
}

// List godoc
// @Summary List inquiries
// @Description Returns inquiries newest first (staff only)
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /inquiries [get]
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 25, 100)

	inquiries, total, err := h.inquiryService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve inquiries", err)
	}

	meta := pagination.GetMeta(params, len(inquiries), total)
	return response.Paginated(c, "Inquiries retrieved successfully", inquiries, meta)
}

// Get godoc
// @Summary Get an inquiry
// @Description Returns a single inquiry by ID (staff only)
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inquiry ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID")
	}

	inquiry, err := h.inquiryService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInquiryNotFound):
			return response.NotFound(c, "Inquiry not found")
		default:
			return response.InternalServerError(c, "Failed to retrieve inquiry", err)
		}
	}

	return response.Success(c, "Inquiry retrieved successfully", inquiry)
}

// Delete godoc
// @Summary Delete an inquiry
// @Description Removes an inquiry ahead of its automatic expiry (admin only)
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inquiry ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID")
	}

	if err := h.inquiryService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrInquiryNotFound):
			return response.NotFound(c, "Inquiry not found")
		default:
			return response.InternalServerError(c, "Failed to delete inquiry", err)
		}
	}

	return response.Success(c, "Inquiry deleted successfully", nil)
}
