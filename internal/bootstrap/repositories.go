package bootstrap

import (
	"log/slog"

	"github.com/osse101/UsersAPI_Go/internal/config"
	"github.com/osse101/UsersAPI_Go/internal/user"
)

// Repositories holds the store implementations used by the application.
// Memory is the backing store; User is what services should use, which is
// Memory behind the read-through cache when one is configured.
type Repositories struct {
	Memory *user.InMemoryRepository
	User   user.Repository
}

// InitializeRepositories creates the in-memory user store and wraps it with
// the cache sized by cfg.
func InitializeRepositories(cfg *config.Config) *Repositories {
	memory := user.NewInMemoryRepository()
	cached := user.NewCachedRepository(memory, user.CacheConfig{
		Size: cfg.UserCacheSize,
		TTL:  cfg.UserCacheTTL,
	})

	slog.Info(LogMsgStoreInitialized,
		"cache_enabled", cfg.UserCacheSize > 0,
		"cache_size", cfg.UserCacheSize,
		"cache_ttl", cfg.UserCacheTTL)

	return &Repositories{
		Memory: memory,
		User:   cached,
	}
}
