package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sebuszqo/MyFinance/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration
	LegacyRoutes    bool

	// Storage
	StoreBackend       string
	DBConnectionString string

	// Credentials
	PasswordHasher string
	BcryptCost     int

	// Logging
	LogLevel  string
	LogFormat string

	// Demo account, seeded when the password is set
	DemoPassword string
}

// Load reads the configuration from the environment, after merging a .env
// file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, continuing with system environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LegacyRoutes:    getEnvBool("LEGACY_ROUTES", false),

		StoreBackend:       getEnv("STORE_BACKEND", BackendMemory),
		DBConnectionString: getEnv("DB_CONNECTION_STRING", ""),

		PasswordHasher: getEnv("PASSWORD_HASHER", "bcrypt"),
		BcryptCost:     getEnvInt("BCRYPT_COST", 12),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DemoPassword: getEnv("DEMO_PASSWORD", ""),
	}
}

// Validate returns every configuration problem in a single error.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBConnectionString == "" {
			errors = append(errors, "DB_CONNECTION_STRING is required when using postgres backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s]", c.StoreBackend, BackendMemory, BackendPostgres))
	}

	switch c.PasswordHasher {
	case "bcrypt":
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
		}
	case "argon2id":
	default:
		errors = append(errors, fmt.Sprintf("invalid password hasher '%s': must be bcrypt or argon2id", c.PasswordHasher))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
