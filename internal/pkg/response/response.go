package response

import (
	"log"

	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// debug controls whether 5xx responses carry the underlying error detail.
// Set once at startup from the loaded config, never from ambient env reads.
var debug bool

// SetDebug enables error detail in server error responses (dev mode only)
func SetDebug(enabled bool) {
	debug = enabled
}

// Response represents a standard API response
type Response struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Error      string           `json:"error,omitempty"`
	Fields     interface{}      `json:"fields,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Paginated sends a success response with pagination metadata
func Paginated(c *fiber.Ctx, message string, data interface{}, meta *pagination.Meta) error {
	return c.JSON(Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: meta,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ValidationFailed sends a 400 response carrying field-level errors
func ValidationFailed(c *fiber.Ctx, fields interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Error:   "Validation failed",
		Fields:  fields,
	})
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 response. The underlying error is always
// logged server-side; its message reaches the client only in dev mode.
func InternalServerError(c *fiber.Ctx, message string, err error) error {
	if err != nil {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		if debug {
			return Error(c, fiber.StatusInternalServerError, message+": "+err.Error())
		}
	}
	return Error(c, fiber.StatusInternalServerError, message)
}
