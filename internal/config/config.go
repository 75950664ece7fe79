package config

import (
	"fmt"
	"os"
	"strconv"

	"fintrack/internal/database"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	Database *database.Config

	// APIToken, when set, is required as a bearer token on /api/v1.
	APIToken string

	// UpcomingDays is the default horizon of the upcoming debts view.
	UpcomingDays int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present; the environment wins otherwise
	_ = godotenv.Load()

	dbCfg, err := database.NewConfig()
	if err != nil {
		return nil, err
	}

	days, err := strconv.Atoi(getEnv("UPCOMING_DAYS", "7"))
	if err != nil || days < 0 {
		return nil, fmt.Errorf("invalid UPCOMING_DAYS %q: must be a non-negative integer", os.Getenv("UPCOMING_DAYS"))
	}

	config := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		Database:     dbCfg,
		APIToken:     os.Getenv("API_TOKEN"),
		UpcomingDays: days,
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() (*Config, error) {
	if appConfig == nil {
		return Load()
	}
	return appConfig, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
