package ports

import (
	"context"

	"apartment-eval-service/internal/domain"
)

// Evaluation cache occupancy, exposed by the cache admin endpoints.
type CacheStats struct {
	Entries int
	Keys    []string
}

// Port: a time-bounded store mapping normalized addresses to completed
// evaluations. Implementations must never return an entry older than
// their TTL; expired entries are evicted lazily on lookup. Entries are
// fully replaced on refresh, never merged.
type EvaluationCache interface {
	// Fetch a fresh entry by normalized address. ok is false on miss or
	// expiry.
	Get(ctx context.Context, key string) (eval *domain.Evaluation, ok bool, err error)
	// Store an evaluation under the normalized address, replacing any
	// existing entry.
	Put(ctx context.Context, key string, eval *domain.Evaluation) error
	// Drop all entries.
	Clear(ctx context.Context) error
	// Report current occupancy.
	Stats(ctx context.Context) (CacheStats, error)
}
