package routes

import (
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/handlers"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/middleware"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/config"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	packageRepo := repositories.NewPackageRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(cfg)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	packageService := services.NewPackageService(packageRepo)
	bookingService := services.NewBookingService(bookingRepo, packageRepo, userRepo, notifyService)
	inquiryService := services.NewInquiryService(inquiryRepo, packageRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	packageHandler := handlers.NewPackageHandler(packageService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, cfg, healthHandler, authHandler, userHandler,
		packageHandler, bookingHandler, inquiryHandler, userRepo)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	packageHandler *handlers.PackageHandler,
	bookingHandler *handlers.BookingHandler,
	inquiryHandler *handlers.InquiryHandler,
	userRepo repositories.UserRepository,
) {
	authRequired := middleware.AuthMiddleware(cfg, userRepo)

	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authRequired)

	// Package routes (public read, staff write)
	packageRoutes := router.Group("/packages")
	setupPackageRoutes(packageRoutes, packageHandler, cfg, userRepo, authRequired)

	// Booking routes (authenticated)
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Use(authRequired)
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Inquiry routes (public create, staff read, admin delete)
	inquiryRoutes := router.Group("/inquiries")
	setupInquiryRoutes(inquiryRoutes, inquiryHandler, authRequired)

	// User management routes (admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(authRequired)
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (authenticated users)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(authRequired)
	profileRoutes.Get("/", authHandler.Me)
	profileRoutes.Put("/", userHandler.UpdateProfile)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authRequired fiber.Handler) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", authRequired, handler.Me)
	router.Post("/logout-all", authRequired, handler.LogoutAll)
}

// setupPackageRoutes configures catering package routes
func setupPackageRoutes(
	router fiber.Router,
	handler *handlers.PackageHandler,
	cfg *config.Config,
	userRepo repositories.UserRepository,
	authRequired fiber.Handler,
) {
	// Public routes; OptionalAuth unlocks the inactive view for staff
	router.Get("/", middleware.OptionalAuth(cfg, userRepo), handler.List)
	router.Get("/featured", handler.Featured)
	router.Get("/:id", handler.Get)

	// Staff routes
	router.Post("/", authRequired, middleware.StaffOnly(), handler.Create)
	router.Put("/:id", authRequired, middleware.StaffOnly(), handler.Update)
	router.Patch("/:id/toggle", authRequired, middleware.StaffOnly(), handler.ToggleActive)
	router.Delete("/:id", authRequired, middleware.AdminOnly(), handler.Delete)
}

// setupBookingRoutes configures booking routes (all authenticated)
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Post("/", handler.Create)
	router.Get("/my-bookings", handler.MyBookings)

	// Staff routes before the :id wildcard
	router.Get("/stats/overview", middleware.StaffOnly(), handler.Stats)
	router.Get("/", middleware.StaffOnly(), handler.List)

	router.Get("/:id", handler.Get)
	router.Put("/:id/status", middleware.StaffOnly(), handler.UpdateStatus)
	router.Put("/:id/payment-receipt", handler.UpdatePayment)
	router.Delete("/:id", handler.Cancel)
}

// setupInquiryRoutes configures inquiry routes
func setupInquiryRoutes(router fiber.Router, handler *handlers.InquiryHandler, authRequired fiber.Handler) {
	// Public submission, rate limited
	router.Post("/", middleware.AuthRateLimiter(), handler.Create)

	// Staff routes
	router.Get("/", authRequired, middleware.StaffOnly(), handler.List)
	router.Get("/:id", authRequired, middleware.StaffOnly(), handler.Get)
	router.Delete("/:id", authRequired, middleware.AdminOnly(), handler.Delete)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
