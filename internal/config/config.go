package config

import (
	"os"
	"strconv"
	"time"

	"gostock/internal/errors"
)

// DefaultIntro is rendered as markdown above the form
const DefaultIntro = "Add items to a spreadsheet and download the updated file."

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Session SessionConfig
	UI      UIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// DataConfig holds spreadsheet settings
type DataConfig struct {
	Dir            string
	DefaultFile    string
	DefaultColumns int
	SheetName      string
}

// SessionConfig holds per-user session settings
type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

// UIConfig holds page text
type UIConfig struct {
	Title         string
	IntroMarkdown string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Data:    *loadDataConfig(),
		Session: *loadSessionConfig(),
		UI:      *loadUIConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Dir:            getEnvOrDefault("DATA_DIR", "."),
		DefaultFile:    getEnvOrDefault("DEFAULT_FILE", "stock_data.xlsx"),
		DefaultColumns: getEnvIntOrDefault("DEFAULT_COLUMNS", 2),
		SheetName:      getEnvOrDefault("SHEET_NAME", "Sheet1"),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL:        getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		CookieName: getEnvOrDefault("SESSION_COOKIE", "gostock_session"),
	}
}

func loadUIConfig() *UIConfig {
	return &UIConfig{
		Title:         getEnvOrDefault("APP_TITLE", "Stock Management"),
		IntroMarkdown: getEnvOrDefault("INTRO_MARKDOWN", DefaultIntro),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Data.DefaultFile == "" {
		return errors.ConfigInvalid("DEFAULT_FILE must not be empty")
	}
	if config.Data.DefaultColumns < 1 {
		return errors.ConfigInvalid("DEFAULT_COLUMNS must be at least 1")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	info, err := os.Stat(config.Data.Dir)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if !info.IsDir() {
		return errors.ConfigInvalid("DATA_DIR must be a directory")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
