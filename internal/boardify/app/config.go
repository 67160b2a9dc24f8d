package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/boardify/internal/boardify/store/drivers/postgres"
	"github.com/aussiebroadwan/boardify/pkg/cryptox"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

type Config struct {
	Env       string // Environment (dev, staging, production) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DBDriver     string           // Storage backend (sqlite, postgres) (default: sqlite)
	DatabaseFile string           // SQLite database file (default: boardify.db)
	DatabaseURL  string           // Optional: full postgres:// URL, wins over Postgres
	Postgres     postgres.Options // Discrete postgres parameters (DB_HOST, DB_PORT, ...)

	CORSOrigins          []string      // Allowed browser origins, "*" for any. Empty disables CORS.
	SessionTTL           time.Duration // Session lifetime (default: 7 days)
	InviteTTL            time.Duration // Invite lifetime (default: 7 days)
	PBKDF2Iterations     int           // Password hashing cost (default: 310000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()
	// httpx read RATELIMIT_* at init, before .env was merged.
	httpx.LoadRateLimitOverrides()

	env := getEnvOrDefault("ENV", getEnvOrDefault("NODE_ENV", "dev"))

	return Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DBDriver:     strings.ToLower(getEnvOrDefault("DB_DRIVER", "sqlite")),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "boardify.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Postgres: postgres.Options{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "boardify"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},

		CORSOrigins:          splitList(os.Getenv("CORS_ORIGINS")),
		SessionTTL:           time.Duration(getEnvIntOrDefault("SESSION_TTL_DAYS", 7)) * 24 * time.Hour,
		InviteTTL:            time.Duration(getEnvIntOrDefault("INVITE_TTL_DAYS", 7)) * 24 * time.Hour,
		PBKDF2Iterations:     getEnvIntOrDefault("PBKDF2_ITERATIONS", cryptox.DefaultIterations),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PostgresDSN returns DATABASE_URL when set and otherwise builds one from
// the discrete DB_* variables.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Postgres.DSN()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
