package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Identity provider configuration
	Auth AuthConfig

	// Public site configuration
	Site SiteConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds document store connection settings
type DatabaseConfig struct {
	Driver       string // "postgres" or "sqlite"
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string // sqlite file path
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds identity provider settings
type AuthConfig struct {
	Enabled           bool
	Issuer            string
	SignInURL         string
	SecretKey         string // HMAC secret, used when PublicKeyPEM is empty
	PublicKeyPEM      string // RSA or ECDSA public key
	CookieName        string
	AuthorizedParties []string
	ClockSkew         time.Duration
}

// SiteConfig holds settings for the public site and sitemap
type SiteConfig struct {
	Name        string
	BaseURL     string
	SectionSize int
	MaxImport   int64 // in bytes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "newsroom"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			Path:         getEnv("DB_PATH", "./data/newsroom.db"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:           getBoolEnv("AUTH_ENABLED", true),
			Issuer:            getEnv("AUTH_ISSUER", ""),
			SignInURL:         getEnv("AUTH_SIGN_IN_URL", "/sign-in"),
			SecretKey:         getEnv("AUTH_SECRET_KEY", ""),
			PublicKeyPEM:      getEnv("AUTH_PUBLIC_KEY", ""),
			CookieName:        getEnv("AUTH_COOKIE_NAME", "__session"),
			AuthorizedParties: getListEnv("AUTH_AUTHORIZED_PARTIES", nil),
			ClockSkew:         getDurationEnv("AUTH_CLOCK_SKEW", 5*time.Second),
		},
		Site: SiteConfig{
			Name:        getEnv("SITE_NAME", "Newsroom"),
			BaseURL:     strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:8080"), "/"),
			SectionSize: getIntEnv("SITE_SECTION_SIZE", 4),
			MaxImport:   getInt64Env("MAX_IMPORT_SIZE", 20*1024*1024), // 20MB
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: postgres, sqlite")
	}

	if c.Auth.Enabled && c.Auth.SecretKey == "" && c.Auth.PublicKeyPEM == "" {
		return fmt.Errorf("AUTH_SECRET_KEY or AUTH_PUBLIC_KEY is required when AUTH_ENABLED is true")
	}
	if c.Site.SectionSize <= 0 {
		return fmt.Errorf("SITE_SECTION_SIZE must be positive")
	}
	return nil
}

// GetDSN returns the connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite" {
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty items
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
