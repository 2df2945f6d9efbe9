package storage

import (
	"container/list"
	"sync"
	"time"
)

// cacheItem represents an item in the cache
type cacheItem struct {
	key       string
	value     interface{}
	timestamp time.Time
	element   *list.Element
}

// MemoryCache implements an LRU cache with TTL support
type MemoryCache struct {
	maxSize int
	items   map[string]*cacheItem
	lruList *list.List
	mu      sync.Mutex
	ttl     time.Duration

	hits   int64
	misses int64

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewMemoryCache creates a new in-memory cache with specified size
func NewMemoryCache(maxSize int) *MemoryCache {
	return NewMemoryCacheWithTTL(maxSize, 0)
}

// NewMemoryCacheWithTTL creates a new in-memory cache with TTL. A positive
// TTL starts a cleanup goroutine that runs until Close.
func NewMemoryCacheWithTTL(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	cache := &MemoryCache{
		maxSize: maxSize,
		items:   make(map[string]*cacheItem),
		lruList: list.New(),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if ttl > 0 {
		go cache.cleanupRoutine()
	}

	return cache
}

// Set adds or updates an item in the cache
func (mc *MemoryCache) Set(key string, value interface{}) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()

	if item, exists := mc.items[key]; exists {
		item.value = value
		item.timestamp = now
		mc.lruList.MoveToFront(item.element)
		return nil
	}

	item := &cacheItem{
		key:       key,
		value:     value,
		timestamp: now,
	}
	item.element = mc.lruList.PushFront(item)
	mc.items[key] = item

	if len(mc.items) > mc.maxSize {
		mc.evictOldest()
	}

	return nil
}

// Get retrieves an item from the cache
func (mc *MemoryCache) Get(key string) (interface{}, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		mc.misses++
		return nil, false
	}

	if mc.expired(item, mc.now()) {
		mc.deleteItem(item)
		mc.misses++
		return nil, false
	}

	mc.lruList.MoveToFront(item.element)
	mc.hits++

	return item.value, true
}

// Delete removes an item from the cache
func (mc *MemoryCache) Delete(key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if item, exists := mc.items[key]; exists {
		mc.deleteItem(item)
	}

	return nil
}

// Clear removes all items from the cache
func (mc *MemoryCache) Clear() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.items = make(map[string]*cacheItem)
	mc.lruList = list.New()

	return nil
}

// Size returns the current number of items in the cache
func (mc *MemoryCache) Size() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.items)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return CacheStats{
		Size:    len(mc.items),
		MaxSize: mc.maxSize,
		TTL:     mc.ttl,
		Hits:    mc.hits,
		Misses:  mc.misses,
	}
}

// Close stops the cleanup goroutine
func (mc *MemoryCache) Close() {
	mc.once.Do(func() { close(mc.stop) })
}

func (mc *MemoryCache) expired(item *cacheItem, now time.Time) bool {
	return mc.ttl > 0 && now.Sub(item.timestamp) > mc.ttl
}

// evictOldest removes the least recently used item
func (mc *MemoryCache) evictOldest() {
	element := mc.lruList.Back()
	if element != nil {
		mc.deleteItem(element.Value.(*cacheItem))
	}
}

// deleteItem removes an item from both map and list
func (mc *MemoryCache) deleteItem(item *cacheItem) {
	delete(mc.items, item.key)
	mc.lruList.Remove(item.element)
}

// cleanupRoutine periodically removes expired items
func (mc *MemoryCache) cleanupRoutine() {
	ticker := time.NewTicker(mc.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.cleanupExpired()
		}
	}
}

// cleanupExpired removes all expired items
func (mc *MemoryCache) cleanupExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	for _, item := range mc.items {
		if mc.expired(item, now) {
			mc.deleteItem(item)
		}
	}
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
}
