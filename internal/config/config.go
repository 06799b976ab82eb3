package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone *time.Location
}

// APIConfig describes the HRMS REST backend
type APIConfig struct {
	BaseURL            string
	Timeout            time.Duration
	HealthPollInterval time.Duration
}

// SessionConfig holds browser session configuration
type SessionConfig struct {
	Secret          string
	TTL             time.Duration
	CleanupInterval time.Duration
}

// UIConfig holds presentation settings
type UIConfig struct {
	RowFlashWindow time.Duration
	AllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	tz := getEnv("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: loc,
	}

	// Backend API configuration
	apiTimeout, err := getEnvDuration("API_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	healthPoll, err := getEnvDuration("HEALTH_POLL_INTERVAL", "5s")
	if err != nil {
		return nil, err
	}

	config.API = APIConfig{
		BaseURL:            strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		Timeout:            apiTimeout,
		HealthPollInterval: healthPoll,
	}

	// Session configuration
	sessionTTL, err := getEnvDuration("SESSION_TTL", "12h")
	if err != nil {
		return nil, err
	}
	sessionCleanup, err := getEnvDuration("SESSION_CLEANUP_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	config.Session = SessionConfig{
		Secret:          getEnv("SESSION_SECRET", ""),
		TTL:             sessionTTL,
		CleanupInterval: sessionCleanup,
	}

	// UI configuration
	flashWindow, err := getEnvDuration("ROW_FLASH_WINDOW", "1200ms")
	if err != nil {
		return nil, err
	}

	config.UI = UIConfig{
		RowFlashWindow: flashWindow,
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.API.Timeout <= 0 || c.API.HealthPollInterval <= 0 {
		return fmt.Errorf("API_TIMEOUT and HEALTH_POLL_INTERVAL must be positive")
	}
	if c.Session.TTL <= 0 || c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_TTL and SESSION_CLEANUP_INTERVAL must be positive")
	}
	if c.UI.RowFlashWindow < 0 {
		return fmt.Errorf("ROW_FLASH_WINDOW must not be negative")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps LOG_LEVEL onto slog levels, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
