package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/middleware"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/http/routes"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/config"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/services"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"

	_ "github.com/mame12b/lyan-restaurant-sub000/docs" // Swagger docs
)

// @title Lyan Catering API
// @version 1.0
// @description Event catering booking API: packages, bookings with WhatsApp handoff, and inquiries.

// @contact.name API Support
// @contact.email support@lyancatering.com

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Error detail in responses only outside prod
	response.SetDebug(cfg.IsDev())

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account and sample packages
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start cron service: nightly inquiry sweep and refresh token pruning
	cronService := services.NewCronService(
		repositories.NewInquiryRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Lyan Catering API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
