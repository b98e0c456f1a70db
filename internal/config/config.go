package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the extraction service.
type Config struct {
	Port            string
	MaxUploadBytes  int64
	MaxMemoryBytes  int64
	AllowOrigin     string
	EndpointURL     string
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AllowOrigin:   getEnv("CORS_ALLOW_ORIGIN", "*"),
		EndpointURL:   getEnv("EXTRACT_ENDPOINT_URL", "/api/extract-text"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.MaxUploadBytes, err = megabytes("MAX_UPLOAD_MB", 25); err != nil {
		return nil, err
	}
	if cfg.MaxMemoryBytes, err = megabytes("MAX_MEMORY_MB", 8); err != nil {
		return nil, err
	}
	if cfg.MaxMemoryBytes > cfg.MaxUploadBytes {
		cfg.MaxMemoryBytes = cfg.MaxUploadBytes
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}

func megabytes(key string, def int64) (int64, error) {
	raw := getEnv(key, strconv.FormatInt(def, 10))
	mb, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if mb <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return mb << 20, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
