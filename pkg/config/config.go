package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Structured store. An empty DatabaseURL selects local SQLite mode.
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string
	LocalMode      bool

	// Key-value store. An empty RedisURL keeps settings in memory.
	RedisURL string

	// Event broker. An empty RabbitMQURL keeps events in process.
	RabbitMQURL string

	// Schedule
	DefaultStartTime string
	ResetTimeout     time.Duration

	// Key-value circuit breaker
	BreakerFailures int
	BreakerTimeout  time.Duration

	// Spreadsheet import
	SheetName      string
	ColumnOrder    string
	ColumnName     string
	ColumnDuration string
	ColumnNotes    string
	ColumnStart    string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		DatabaseURL:    databaseURL,
		DatabaseDriver: detectDriver(databaseURL),
		SQLitePath:     getEnv("SQLITE_PATH", ""),
		LocalMode:      databaseURL == "",

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		DefaultStartTime: getEnv("DAYLINE_DEFAULT_START_TIME", "9:00"),
		ResetTimeout:     getDurationEnv("DAYLINE_RESET_TIMEOUT", 10*time.Second),

		BreakerFailures: getIntEnv("DAYLINE_BREAKER_FAILURES", 5),
		BreakerTimeout:  getDurationEnv("DAYLINE_BREAKER_TIMEOUT", 30*time.Second),

		SheetName:      getEnv("DAYLINE_SHEET_NAME", ""),
		ColumnOrder:    getEnv("DAYLINE_COLUMN_ORDER", "orderId"),
		ColumnName:     getEnv("DAYLINE_COLUMN_NAME", "name"),
		ColumnDuration: getEnv("DAYLINE_COLUMN_DURATION", "duration"),
		ColumnNotes:    getEnv("DAYLINE_COLUMN_NOTES", "notes"),
		ColumnStart:    getEnv("DAYLINE_COLUMN_START", "startTime"),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesRedis reports whether settings live in Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}

// UsesBroker reports whether events go to RabbitMQ.
func (c *Config) UsesBroker() bool {
	return c.RabbitMQURL != ""
}

func detectDriver(url string) string {
	if url == "" {
		return "sqlite"
	}
	if strings.HasPrefix(url, "sqlite://") || strings.HasPrefix(url, "file:") {
		return "sqlite"
	}
	return "postgres"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
