package engine

import (
	"time"

	"github.com/krisalay/tagcache/expiration"
	"github.com/krisalay/tagcache/types"
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- When data is expired
- How access metadata and TTL are updated on reads/writes
- How large an entry is for the memory budget
- Where lifecycle events are reported

It does NOT:
- Store data
- Maintain the tag index
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {

	// Expiration controls when a cache entry should be considered “too old”.
	// If this is nil, ExpireAfterWrite is used.
	Expiration expiration.Strategy

	// Sizer estimates how many bytes an entry counts against the memory budget.
	Sizer Sizer

	// Clock is the source of "now" for every timestamp the cache writes.
	Clock types.Clock

	// Metrics mirrors lifecycle events to an external system.
	// Hits, misses, evictions, expirations, invalidations.
	Metrics types.Metrics
}

/*
NewCacheEngine creates a CacheEngine.
Any nil argument is replaced by its default, so the rest of the
codebase never checks for nil.
*/
func NewCacheEngine(
	exp expiration.Strategy,
	sizer Sizer,
	clock types.Clock,
	metrics types.Metrics,
) *CacheEngine {

	if exp == nil {
		exp = expiration.ExpireAfterWrite{}
	}
	if sizer == nil {
		sizer = JSONSizer{}
	}
	if clock == nil {
		clock = types.SystemClock{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &CacheEngine{
		Expiration: exp,
		Sizer:      sizer,
		Clock:      clock,
		Metrics:    metrics,
	}
}

// Now reads the engine's clock.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

/*
IsExpired checks whether a cache entry is expired at now.
Delegates the decision to the configured Expiration strategy.
*/
func (e *CacheEngine) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return e.Expiration.IsExpired(ent, now)
}

/*
OnRead is called every time the cache successfully returns a value.

This is where read-related behavior lives:
- Bump the access counter
- Update LastAccessedAt (and ExpireAt for sliding strategies)
*/
func (e *CacheEngine) OnRead(ent *types.CacheEntry, now time.Time) {
	ent.AccessCount++
	e.Expiration.OnAccess(ent, now)
}

/*
OnWrite is called for a freshly built entry before it is stored.
It stamps the timestamps and derives ExpireAt from the entry's TTL.
*/
func (e *CacheEngine) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.AccessCount = 0
	e.Expiration.OnWrite(ent, now)
}

/*
Size estimates the bytes an entry will count against the memory budget.
An error means the value cannot be encoded and must not be cached.
*/
func (e *CacheEngine) Size(key string, value any) (int64, error) {
	n, err := e.Sizer.Size(value)
	if err != nil {
		return 0, err
	}
	return int64(len(key)) + n, nil
}
