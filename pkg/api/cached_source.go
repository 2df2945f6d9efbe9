package api

import (
	"context"
	"time"

	"keyword-radar/pkg/storage"
)

// CachedDocumentCountSource decorates a DocumentCountSource with an LRU+TTL
// cache. Only successful lookups are cached.
type CachedDocumentCountSource struct {
	next  DocumentCountSource
	cache *storage.MemoryCache
}

// NewCachedDocumentCountSource wraps next with a cache of at most size entries
func NewCachedDocumentCountSource(next DocumentCountSource, size int, ttl time.Duration) *CachedDocumentCountSource {
	return &CachedDocumentCountSource{
		next:  next,
		cache: storage.NewMemoryCacheWithTTL(size, ttl),
	}
}

// LookupDocumentCount serves keyword from the cache or the wrapped source
func (c *CachedDocumentCountSource) LookupDocumentCount(ctx context.Context, keyword string) (int, error) {
	if v, ok := c.cache.Get(keyword); ok {
		return v.(int), nil
	}

	count, err := c.next.LookupDocumentCount(ctx, keyword)
	if err != nil {
		return 0, err
	}

	_ = c.cache.Set(keyword, count)
	return count, nil
}

// Stats exposes cache statistics
func (c *CachedDocumentCountSource) Stats() storage.CacheStats {
	return c.cache.Stats()
}

// Close stops the cache cleanup goroutine
func (c *CachedDocumentCountSource) Close() {
	c.cache.Close()
}
