package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is constructed once
// at process start and passed by injection to the components that need it.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	WhatsApp WhatsAppConfig
	Twilio   TwilioConfig
	Origins  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// WhatsAppConfig holds the handoff deep link configuration
type WhatsAppConfig struct {
	// ContactNumber is the business WhatsApp number the deep link addresses,
	// digits only with country code (e.g. 251911234567)
	ContactNumber string
	// Currency is the label appended to formatted amounts
	Currency string
}

// TwilioConfig holds the optional outbound WhatsApp push configuration.
// Leaving AccountSID empty disables sending; the deep link is always built.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether Twilio credentials are configured
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "5000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "lyan_catering"),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "default_secret"),
			RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
			AccessTokenMins:  accessMins,
			RefreshTokenDays: refreshDays,
		},
		WhatsApp: WhatsAppConfig{
			ContactNumber: getEnv("WHATSAPP_NUMBER", ""),
			Currency:      getEnv("CURRENCY", "ETB"),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_WHATSAPP_FROM", ""),
		},
		Origins: getEnv("ALLOWED_ORIGINS", ""),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.Origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://lyancatering.com"
	}
	return c.Origins
}
