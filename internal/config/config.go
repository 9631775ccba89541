package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Cron cadence. Both stages recompute from scratch each run, so the
	// intervals can be shortened freely in development.
	ScanInterval    time.Duration
	SummaryInterval time.Duration

	// Reminder policy (one global policy, no per-bill override)
	NotifyBeforeDays   int
	NotifyOnDueDate    bool
	RepeatOverdueDaily bool

	// Notifications
	NotificationRecipient string

	// Redelivery for scheduled stages
	MaxRetries     int
	InitialBackoff time.Duration

	// Read side
	SummaryCacheTTL time.Duration
	EventLogSize    int
	DueSoonDays     int

	// Observability
	OTLPEndpoint string

	// CORS (the payguard frontend runs on a separate origin)
	AllowedOrigins string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ScanInterval:    getEnvDuration("SCAN_INTERVAL", 24*time.Hour),
		SummaryInterval: getEnvDuration("SUMMARY_INTERVAL", 24*time.Hour),

		NotifyBeforeDays:   getEnvInt("NOTIFY_BEFORE_DAYS", 3),
		NotifyOnDueDate:    getEnvBool("NOTIFY_ON_DUE_DATE", true),
		RepeatOverdueDaily: getEnvBool("REPEAT_OVERDUE_DAILY", true),

		NotificationRecipient: getEnv("NOTIFICATION_RECIPIENT", "user@example.com"),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),

		SummaryCacheTTL: getEnvDuration("SUMMARY_CACHE_TTL", 30*time.Second),
		EventLogSize:    getEnvInt("EVENT_LOG_SIZE", 100),
		DueSoonDays:     getEnvInt("DUE_SOON_DAYS", 7),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
