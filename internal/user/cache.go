package user

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/UsersAPI_Go/internal/domain"
)

// CacheConfig sizes the read-through user cache. A Size of zero disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the cache settings used when none are configured.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats is a point-in-time view of cache effectiveness.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedRepository decorates a Repository with an expirable LRU for
// FindByID. Mutations invalidate the affected id.
//
// mu orders cache fills against mutations: a fill holds the read lock from
// the backing read until the cache write, a mutation holds the write lock
// until the invalidation, so a value read before a write is never cached
// after it.
type cachedRepository struct {
	Repository

	mu     sync.RWMutex
	lru    *expirable.LRU[uuid.UUID, domain.User]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedRepository wraps repo with a read-through cache. It returns repo
// unchanged when cfg.Size is not positive.
func NewCachedRepository(repo Repository, cfg CacheConfig) Repository {
	if cfg.Size <= 0 {
		return repo
	}
	return &cachedRepository{
		Repository: repo,
		lru:        expirable.NewLRU[uuid.UUID, domain.User](cfg.Size, nil, cfg.TTL),
	}
}

func (c *cachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := c.lru.Get(id); ok {
		c.hits.Add(1)
		return &u, nil
	}
	c.misses.Add(1)

	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := c.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.lru.Add(id, *u)
	return u, nil
}

func (c *cachedRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.Repository.Insert(ctx, user)
	if err == nil {
		c.lru.Remove(stored.ID)
	}
	return stored, err
}

func (c *cachedRepository) Update(ctx context.Context, user domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer c.lru.Remove(user.ID)
	return c.Repository.Update(ctx, user)
}

func (c *cachedRepository) Upsert(ctx context.Context, user domain.User) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer c.lru.Remove(user.ID)
	return c.Repository.Upsert(ctx, user)
}

func (c *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer c.lru.Remove(id)
	return c.Repository.Delete(ctx, id)
}

// Stats returns hit/miss counters and the current entry count.
func (c *cachedRepository) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}

// StatsOf returns the cache statistics of repo, if it is cached.
func StatsOf(repo Repository) (CacheStats, bool) {
	c, ok := repo.(*cachedRepository)
	if !ok {
		return CacheStats{}, false
	}
	return c.Stats(), true
}
