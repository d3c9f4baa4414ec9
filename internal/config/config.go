package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	ProviderDirectoryURL string
	BookingAPIURL        string
	InteractionAPIURL    string

	SlotDurationMinutes int
	SlotStepMinutes     int
	HorizonDays         int
	ScheduleCacheTTL    time.Duration

	DraftTTL time.Duration

	InteractionTimeout time.Duration
	ToggleRateLimit    float64
	ToggleBurst        int

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		ProviderDirectoryURL: getEnv("PROVIDER_DIRECTORY_URL", ""),
		BookingAPIURL:        getEnv("BOOKING_API_URL", ""),
		InteractionAPIURL:    getEnv("INTERACTION_API_URL", ""),

		SlotDurationMinutes: getEnvAsInt("SLOT_DURATION_MINUTES", 60),
		SlotStepMinutes:     getEnvAsInt("SLOT_STEP_MINUTES", 60),
		HorizonDays:         getEnvAsInt("NEXT_AVAILABLE_HORIZON_DAYS", 30),
		ScheduleCacheTTL:    getEnvAsDuration("SCHEDULE_CACHE_TTL", 5*time.Minute),

		DraftTTL: getEnvAsDuration("DRAFT_TTL", 24*time.Hour),

		InteractionTimeout: getEnvAsDuration("INTERACTION_TIMEOUT", 10*time.Second),
		ToggleRateLimit:    getEnvAsFloat("TOGGLE_RATE_LIMIT", 0),
		ToggleBurst:        getEnvAsInt("TOGGLE_BURST", 10),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming
// whitespace and dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
