package cache

import (
	"context"
	"sync"
	"time"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"
)

type memoryEntry struct {
	eval      *domain.Evaluation
	createdAt time.Time
}

// In-process evaluation cache with TTL-based staleness. Expired entries
// are evicted lazily on lookup; there is no size bound (accepted at this
// tool's scale). Safe for concurrent use; same-key writers race and the
// last one wins, matching the service's last-writer-wins semantics.
type MemoryEvaluationCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryEvaluationCache(ttl time.Duration) *MemoryEvaluationCache {
	return &MemoryEvaluationCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryEvaluationCache) Get(ctx context.Context, key string) (*domain.Evaluation, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if c.now().Sub(entry.createdAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && c.now().Sub(cur.createdAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return entry.eval, true, nil
}

func (c *MemoryEvaluationCache) Put(ctx context.Context, key string, eval *domain.Evaluation) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{eval: eval, createdAt: c.now()}
	c.mu.Unlock()
	return nil
}

func (c *MemoryEvaluationCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryEvaluationCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := ports.CacheStats{Entries: len(c.entries), Keys: make([]string, 0, len(c.entries))}
	for k := range c.entries {
		stats.Keys = append(stats.Keys, k)
	}
	return stats, nil
}
