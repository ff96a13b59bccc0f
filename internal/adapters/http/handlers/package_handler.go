package handlers

import (
	"errors"
	"strconv"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/pagination"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PackageHandler handles catering package endpoints
type PackageHandler struct {
	packageService *services.PackageService
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageService *services.PackageService) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
	}
}

// PackageRequest represents create/update package request
type PackageRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount,omitempty"`
	Category    string   `json:"category"`
	Features    []string `json:"features,omitempty"`
	EventTypes  []string `json:"event_types,omitempty"`
	MaxGuests   int      `json:"max_guests,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

func validatePackageRequest(req *PackageRequest) validation.Errors {
	v := validation.New()
	v.Required("name", req.Name)
	v.MaxLen("name", req.Name, 100)
	v.MinFloat("price", req.Price, 0)
	v.Range("discount", req.Discount, 0, 100)
	v.Required("category", req.Category)
	v.OneOf("category", req.Category, domain.PackageCategories())
	v.MinInt("max_guests", req.MaxGuests, 1)
	for _, et := range req.EventTypes {
		v.OneOf("event_types", et, domain.EventTypes())
	}
	return v.Err()
}

// Create creates a new package
// @Summary Create package
// @Description Create a new catering package (Admin only)
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PackageRequest true "Package data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validatePackageRequest(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	pkg, err := h.packageService.Create(c.Context(), &services.CreatePackageInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Category:    req.Category,
		Features:    req.Features,
		EventTypes:  req.EventTypes,
		MaxGuests:   req.MaxGuests,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create package", err)
	}

	return response.Created(c, "Package created successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// List lists packages
// @Summary List packages
// @Description List packages with optional filters; public callers see active packages only
// @Tags Packages
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param category query string false "Filter by category"
// @Param event_type query string false "Filter by applicable event type"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param include_inactive query bool false "Include inactive packages (staff view)"
// @Success 200 {object} response.Response
// @Router /packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 12, 50)

	filter := repositories.PackageFilter{
		Category:   c.Query("category"),
		EventType:  c.Query("event_type"),
		ActiveOnly: true,
	}
	// The inactive view is for the back office only; needs OptionalAuth on the route
	if c.Query("include_inactive") == "true" {
		if role, ok := c.Locals("role").(string); ok && domain.Role(role).IsStaff() {
			filter.ActiveOnly = false
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if p, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if p, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	packages, total, err := h.packageService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list packages", err)
	}

	return response.Paginated(c, "Packages retrieved successfully",
		toPackageResponses(packages), pagination.GetMeta(params, len(packages), total))
}

// Featured lists discounted active packages
// @Summary Featured packages
// @Description Active packages with a discount, best discount first
// @Tags Packages
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /packages/featured [get]
func (h *PackageHandler) Featured(c *fiber.Ctx) error {
	packages, err := h.packageService.Featured(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list featured packages", err)
	}

	return response.Success(c, "Featured packages retrieved successfully", fiber.Map{
		"packages": toPackageResponses(packages),
	})
}

// Get fetches one package
// @Summary Get package
// @Description Fetch a package by id
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [get]
func (h *PackageHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package id")
	}

	pkg, err := h.packageService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Package not found")
		}
		return response.InternalServerError(c, "Failed to get package", err)
	}

	return response.Success(c, "Package retrieved successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// Update updates a package
// @Summary Update package
// @Description Update a catering package (Admin only)
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param body body PackageRequest true "Package data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [put]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package id")
	}

	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validatePackageRequest(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	pkg, err := h.packageService.Update(c.Context(), id, &services.UpdatePackageInput{
		Name:        &req.Name,
		Description: &req.Description,
		Price:       &req.Price,
		Discount:    &req.Discount,
		Category:    &req.Category,
		Features:    req.Features,
		EventTypes:  req.EventTypes,
		MaxGuests:   &req.MaxGuests,
		ImageURL:    &req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Package not found")
		}
		return response.InternalServerError(c, "Failed to update package", err)
	}

	return response.Success(c, "Package updated successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// Delete removes a package
// @Summary Delete package
// @Description Soft delete a catering package (Admin only)
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package id")
	}

	if err := h.packageService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Package not found")
		}
		return response.InternalServerError(c, "Failed to delete package", err)
	}

	return response.Success(c, "Package deleted successfully", nil)
}

// ToggleActive flips the package active flag
// @Summary Toggle package
// @Description Toggle a package active/inactive and return the new state (Admin only)
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id}/toggle [patch]
func (h *PackageHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package id")
	}

	isActive, err := h.packageService.ToggleActive(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Package not found")
		}
		return response.InternalServerError(c, "Failed to toggle package", err)
	}

	return response.Success(c, "Package toggled successfully", fiber.Map{
		"is_active": isActive,
	})
}

func toPackageResponses(packages []*models.Package) []*models.PackageResponse {
	out := make([]*models.PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, p.ToResponse())
	}
	return out
}
