package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	LogDir      string // empty logs to stdout only

	// Store
	UserCacheSize int
	UserCacheTTL  time.Duration

	// HTTP
	MaxBodyBytes    int64
	TrustedProxies  []string // IPs allowed to set X-Forwarded-For
	ShutdownTimeout time.Duration

	// Per-IP request budget
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName:     getEnv("SERVICE_NAME", DefaultServiceName),
		Version:         getEnv("VERSION", DefaultVersion),
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		LogDir:          getEnv("LOG_DIR", ""),
		UserCacheSize:   getEnvAsInt("USER_CACHE_SIZE", DefaultUserCacheSize),
		UserCacheTTL:    getEnvAsDuration("USER_CACHE_TTL", DefaultUserCacheTTL),
		MaxBodyBytes:    int64(getEnvAsInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.UserCacheSize < 0 {
		return fmt.Errorf("USER_CACHE_SIZE must not be negative, got %d", c.UserCacheSize)
	}
	if c.UserCacheSize > 0 && c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be positive when the cache is enabled")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs in a dev environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when
// unset or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a time.Duration ("30s", "5m"), falling back to the
// default when unset or invalid.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
