package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Store    StoreConfig
	Server   ServerConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Seed     SeedConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver         string // postgres, memory
	MigrateOnStart bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // optional rotating log file
}

// SeedConfig controls first-run catalogue generation.
type SeedConfig struct {
	Enabled    bool
	Users      int
	Tracks     int
	RandomSeed int64
}

// Load reads configuration from the environment. Values in a local .env file
// are applied first without overriding variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadStore(); err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	cfg.loadCORS()
	cfg.loadLogging()
	if err := cfg.loadSeed(); err != nil {
		return nil, fmt.Errorf("load seed config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadDatabase() error {
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadStore() error {
	c.Store.Driver = strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverPostgres))

	migrate, err := strconv.ParseBool(getEnvOrDefault("MIGRATE_ON_START", "true"))
	if err != nil {
		return fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}
	c.Store.MigrateOnStart = migrate
	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		c.CORS.AllowedOrigins = []string{"*"}
		return
	}

	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, trimmed)
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
	c.Logging.File = os.Getenv("LOG_FILE")
}

func (c *Config) loadSeed() error {
	var err error
	if c.Seed.Enabled, err = strconv.ParseBool(getEnvOrDefault("SEED_ENABLED", "true")); err != nil {
		return fmt.Errorf("invalid SEED_ENABLED: %w", err)
	}
	if c.Seed.Users, err = strconv.Atoi(getEnvOrDefault("SEED_USERS", "200")); err != nil {
		return fmt.Errorf("invalid SEED_USERS: %w", err)
	}
	if c.Seed.Tracks, err = strconv.Atoi(getEnvOrDefault("SEED_TRACKS", "1000")); err != nil {
		return fmt.Errorf("invalid SEED_TRACKS: %w", err)
	}
	if c.Seed.RandomSeed, err = strconv.ParseInt(getEnvOrDefault("SEED_RANDOM_SEED", "0"), 10, 64); err != nil {
		return fmt.Errorf("invalid SEED_RANDOM_SEED: %w", err)
	}
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required (or DB_USER and DB_NAME)")
		}
	case DriverMemory:
	default:
		errors = append(errors, "STORE_DRIVER must be one of: postgres, memory")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if c.Seed.Users < 0 || c.Seed.Tracks < 0 {
		errors = append(errors, "SEED_USERS and SEED_TRACKS must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
