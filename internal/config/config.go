package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Backends lists the accepted DATA_BACKEND values.
var Backends = []string{"memory", "file", "sqlite", "mongo"}

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration

	// Logging
	LogLevel string

	// Storage
	DataBackend     string
	StorageKey      string
	DataDir         string
	SQLiteDBPath    string
	MongoURI        string
	MongoDB         string
	MongoCollection string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Worker
	MirrorSchedule string
	MirrorTimeout  time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8081"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataBackend:     strings.ToLower(getEnv("DATA_BACKEND", "file")),
		StorageKey:      getEnv("STORAGE_KEY", "expenses"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		MongoURI:        getEnv("MONGODB_URI", ""),
		MongoDB:         getEnv("MONGODB_DB", "expensetracker"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "slots"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expensetracker"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_changes"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		MirrorSchedule: getEnv("MIRROR_SCHEDULE", "@every 1h"),
		MirrorTimeout:  getEnvDuration("MIRROR_TIMEOUT", time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		errors = append(errors, "storage key cannot be empty")
	}

	// Validate data backend
	if !slices.Contains(Backends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, Backends))
	}

	switch c.DataBackend {
	case "file":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	case "mongo":
		if c.MongoURI == "" {
			errors = append(errors, "MONGODB_URI is required when using mongo backend")
		} else if u, err := url.Parse(c.MongoURI); err != nil {
			errors = append(errors, fmt.Sprintf("invalid MongoDB URI: %v", err))
		} else if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			errors = append(errors, fmt.Sprintf("invalid MongoDB URI scheme '%s': must be 'mongodb' or 'mongodb+srv'", u.Scheme))
		}
		if c.MongoDB == "" || c.MongoCollection == "" {
			errors = append(errors, "MongoDB database and collection names cannot be empty")
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate mirror schedule
	if _, err := cron.ParseStandard(c.MirrorSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid mirror schedule '%s': %v", c.MirrorSchedule, err))
	}
	if c.MirrorTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid mirror timeout %v: must be at least 1 second", c.MirrorTimeout))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateMirror checks the settings only the mirror worker needs.
func (c *Config) ValidateMirror() error {
	var errors []string
	if c.AMQPURL == "" {
		errors = append(errors, "AMQP_URL is required for the mirror worker")
	}
	// A memory slot is private to this process and would only ever hold the seed.
	if strings.EqualFold(c.DataBackend, "memory") {
		errors = append(errors, "DATA_BACKEND=memory cannot be mirrored, use a backend shared with the server")
	}
	if c.GoogleSpreadsheetID != "" && c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" &&
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided when GOOGLE_SPREADSHEET_ID is set")
	}
	if c.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}
	if len(errors) > 0 {
		return fmt.Errorf("mirror configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
