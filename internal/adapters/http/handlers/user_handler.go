package handlers

import (
	"errors"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/middleware"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/pagination"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents the admin user update payload
type UpdateUserRequest struct {
	Role       *string `json:"role"`
	IsActive   *bool   `json:"is_active"`
	IsVerified *bool   `json:"is_verified"`
}

// UpdateProfileRequest represents the self-service profile payload
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// List godoc
// @Summary List users
// @Description Returns all accounts, newest first (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 25, 100)

	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve users", err)
	}

	meta := pagination.GetMeta(params, len(users), total)
	return response.Paginated(c, "Users retrieved successfully", toUserResponses(users), meta)
}

// Get godoc
// @Summary Get a user
// @Description Returns a single account by ID (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to retrieve user", err)
		}
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// Update godoc
// @Summary Update a user
// @Description Updates role and account flags (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	if req.Role != nil {
		v.OneOf("role", *req.Role, domain.Roles())
	}
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	user, err := h.userService.Update(c.Context(), id, &services.UpdateUserInput{
		Role:       req.Role,
		IsActive:   req.IsActive,
		IsVerified: req.IsVerified,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update user", err)
		}
	}

	return response.Success(c, "User updated successfully", user.ToResponse())
}

// Delete godoc
// @Summary Delete a user
// @Description Soft deletes an account (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	// Admins cannot delete themselves
	if id == middleware.PrincipalID(c) {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete user", err)
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Updates the authenticated user's name and phone. Existing booking snapshots are unaffected.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	if req.Name != nil {
		v.Required("name", *req.Name).MaxLen("name", *req.Name, 100)
	}
	if req.Phone != nil && *req.Phone != "" {
		v.Phone("phone", *req.Phone)
	}
	if errs := v.Err(); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	user, err := h.userService.UpdateProfile(c.Context(), middleware.PrincipalID(c), &services.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile", err)
		}
	}

	return response.Success(c, "Profile updated successfully", user.ToResponse())
}

func toUserResponses(users []*models.User) []*models.UserResponse {
	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}
