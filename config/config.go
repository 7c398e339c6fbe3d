package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Notify     NotifyConfig
	Complaints ComplaintSettings
}

// NotifyConfig holds notification delivery configuration. An empty webhook
// URL means notifications are only logged.
type NotifyConfig struct {
	WebhookURL      string
	IntervalSeconds int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// ComplaintSettings are the engine limits and routing toggles. The value is
// loaded once at startup and passed into the services explicitly; the engine
// never reads global state mid-request.
type ComplaintSettings struct {
	MaxComplaintsPerDay  int // per citizen, rolling 24h window
	MaxTitleLength       int
	MaxDescriptionLength int

	MaxFilesPerComplaint int
	MaxFileSizeMB        int64
	MaxTotalSizeMB       int64

	AutoAssignEnabled    bool
	AutoAssignByLocation bool // filter candidates by governorate
	AutoAssignByType     bool // filter candidates by target council
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "naebak"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "naebak_complaints"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
			TokenTTLHours: getEnvInt("JWT_TTL_HOURS", 24),
		},
		Notify: NotifyConfig{
			WebhookURL:      os.Getenv("NOTIFY_WEBHOOK_URL"),
			IntervalSeconds: getEnvInt("NOTIFY_INTERVAL_SECONDS", 30),
		},
		Complaints: ComplaintSettings{
			MaxComplaintsPerDay:  getEnvInt("MAX_COMPLAINTS_PER_DAY", 5),
			MaxTitleLength:       getEnvInt("MAX_TITLE_LENGTH", 200),
			MaxDescriptionLength: getEnvInt("MAX_DESCRIPTION_LENGTH", 1500),
			MaxFilesPerComplaint: getEnvInt("MAX_FILES_PER_COMPLAINT", 10),
			MaxFileSizeMB:        int64(getEnvInt("MAX_FILE_SIZE_MB", 10)),
			MaxTotalSizeMB:       int64(getEnvInt("MAX_TOTAL_SIZE_MB", 50)),
			AutoAssignEnabled:    getEnvBool("AUTO_ASSIGN_ENABLED", true),
			AutoAssignByLocation: getEnvBool("AUTO_ASSIGN_BY_LOCATION", true),
			AutoAssignByType:     getEnvBool("AUTO_ASSIGN_BY_TYPE", true),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
