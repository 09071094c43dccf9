package service

import (
	"context"
	"time"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/pkg/circuit"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/logger"
)

// CacheStore is implemented by the redis client and the in-process cache.
type CacheStore interface {
	IsEnabled() bool
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// CacheService caches catalog detail lookups. Every failure is logged and
// treated as a miss so the database stays the source of truth.
type CacheService struct {
	store   CacheStore
	ttl     time.Duration
	breaker *circuit.Breaker
}

// NewCacheService creates a new cache service. A nil store disables caching.
func NewCacheService(store CacheStore, ttl time.Duration) *CacheService {
	return &CacheService{
		store: store,
		ttl:   ttl,
	}
}

// WithBreaker makes reads and writes skip the store while b is open.
// Invalidations are always attempted.
func (s *CacheService) WithBreaker(b *circuit.Breaker) *CacheService {
	s.breaker = b
	return s
}

func (s *CacheService) enabled() bool {
	return s != nil && s.store != nil && s.store.IsEnabled()
}

func ProductCacheKey(ref string) string  { return constants.CacheKeyProduct + ref }
func CategoryCacheKey(ref string) string { return constants.CacheKeyCategory + ref }

// Get loads key into dest and reports whether it was found.
func (s *CacheService) Get(ctx context.Context, key string, dest any) bool {
	if !s.enabled() {
		return false
	}
	ctx = ctxutil.WithFunction(ctx, "service", "CacheGet")
	if s.breaker.Allow() != nil {
		return false
	}

	found, err := s.store.GetJSON(ctx, key, dest)
	s.breaker.Record(err)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache read failed").
			String("cache_key", key).
			Err(err).
			Log()
		return false
	}

	logger.DebugWithContext(ctx, "Cache lookup").
		String("cache_key", key).
		Bool("hit", found).
		Log()
	return found
}

func (s *CacheService) Set(ctx context.Context, key string, value any) {
	if !s.enabled() {
		return
	}
	ctx = ctxutil.WithFunction(ctx, "service", "CacheSet")
	if s.breaker.Allow() != nil {
		return
	}

	err := s.store.SetJSON(ctx, key, value, s.ttl)
	s.breaker.Record(err)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache write failed").
			String("cache_key", key).
			Err(err).
			Log()
	}
}

// InvalidateCatalog drops every cached product and category entry. Cached
// products embed their category and cached categories carry product counts,
// so any catalog write invalidates both.
func (s *CacheService) InvalidateCatalog(ctx context.Context) {
	s.invalidate(ctx, constants.CacheKeyCategory+"*")
	s.invalidate(ctx, constants.CacheKeyProduct+"*")
}

func (s *CacheService) invalidate(ctx context.Context, pattern string) {
	if !s.enabled() {
		return
	}
	ctx = ctxutil.WithFunction(ctx, "service", "CacheInvalidate")

	deleted, err := s.store.DeleteByPattern(ctx, pattern)
	s.breaker.Record(err)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache invalidation failed").
			String("pattern", pattern).
			Err(err).
			Log()
		return
	}

	logger.DebugWithContext(ctx, "Cache invalidated").
		String("pattern", pattern).
		Int("deleted", deleted).
		Log()
}
