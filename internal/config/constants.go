package config

import "time"

// Defaults applied when the environment leaves a value unset
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultServiceName     = "users-api"
	DefaultVersion         = "dev"
	DefaultEnvironment     = "dev"
	DefaultUserCacheSize   = 1000
	DefaultUserCacheTTL    = 5 * time.Minute
	DefaultMaxBodyBytes    = 1 << 20 // 1MB
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRateLimitRequests = 1000
	DefaultRateLimitWindow   = 5 * time.Minute
)
