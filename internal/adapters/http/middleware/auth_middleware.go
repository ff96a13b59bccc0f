package middleware

import (
	"errors"
	"strings"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/config"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/jwt"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. It verifies the bearer
// credential and resolves the referenced user; a valid token whose user no
// longer exists (or was deactivated) is rejected.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Resolve the principal; the user must still exist and be active
		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Account no longer exists")
			}
			return response.InternalServerError(c, "Failed to resolve user", err)
		}
		if !user.IsActive {
			return response.Unauthorized(c, "Account is deactivated")
		}

		// 6. Attach principal to the request context
		c.Locals("userID", user.ID)
		c.Locals("role", user.Role)
		c.Locals("principal", user)

		return c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present but never
// rejects the request. Public endpoints use it to unlock staff-only views.
func OptionalAuth(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if accessToken == "" {
			return c.Next()
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			return c.Next()
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			return c.Next()
		}

		c.Locals("userID", user.ID)
		c.Locals("role", user.Role)
		c.Locals("principal", user)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware. It is the
// second, independent stage after AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if domain.Role(role) == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOnly middleware allows admin or manager roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleManager)
}

// PrincipalID returns the authenticated user's ID from the request context
func PrincipalID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// PrincipalRole returns the authenticated user's role from the request context
func PrincipalRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(string)
	return domain.Role(role)
}
