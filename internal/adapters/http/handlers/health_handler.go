package handlers

import (
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and API discovery endpoints
type HealthHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg, startedAt: time.Now()}
}

// Root godoc
// @Summary API root
// @Description Returns a welcome message and entry points
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lyan Catering API",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
		"health":  "/health",
	})
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service and database health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(c.Context()); err != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus != "up" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success":  dbStatus == "up",
		"status":   dbStatus,
		"mode":     h.cfg.AppMode,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
		"database": dbStatus,
		"time":     time.Now().Format(time.RFC3339),
	})
}

// APIInfo godoc
// @Summary API info
// @Description Lists the mounted resource groups
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lyan Catering API v1",
		"endpoints": fiber.Map{
			"auth":      "/api/v1/auth",
			"packages":  "/api/v1/packages",
			"bookings":  "/api/v1/bookings",
			"inquiries": "/api/v1/inquiries",
			"users":     "/api/v1/users",
			"profile":   "/api/v1/profile",
		},
	})
}
