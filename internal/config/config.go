package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	IfeditAPIKey string

	// Archive (canonical-render persistence), optional
	ArchiveURL    string
	ArchiveAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Session lifecycle
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		IfeditAPIKey: os.Getenv("IFEDIT_API_KEY"),

		ArchiveURL:    os.Getenv("ARCHIVE_URL"),
		ArchiveAPIKey: os.Getenv("ARCHIVE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		SessionTTL:      envDuration("SESSION_TTL", 4*time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 5*time.Minute),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 4 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.IfeditAPIKey == "" {
		return fmt.Errorf("IFEDIT_API_KEY is required")
	}
	if c.ArchiveURL != "" && c.ArchiveAPIKey == "" {
		return fmt.Errorf("ARCHIVE_API_KEY is required when ARCHIVE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
