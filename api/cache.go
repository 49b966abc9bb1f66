package api

import (
	"context"

	"github.com/krisalay/tagcache/stats"
	"github.com/krisalay/tagcache/types"
)

/*
Cache defines the PUBLIC API of our in-memory cache system.
This is a contract that guarantees certain behaviors, without exposing internals.
All of the details like (storage, tag index, eviction, expiration, locking and metrics)
are hidden behind this interface.

The host application owns key naming, tag naming, and what to do on a miss.
The cache never performs I/O.
*/
type Cache interface {

	/*
		Set stores a key-value pair, replacing any previous entry for the key
		including its tags.

		BEHAVIOR:
		---------
		- TTL comes from the options, or the configured default
		- Registers the key under each tag
		- Evicts until the key and memory budgets hold again

		ERRORS:
		-------
		- Invalid arguments (empty key, non-positive TTL, oversized entry)
		  are rejected and leave the cache unchanged
		- A value whose size cannot be estimated is silently not cached
	*/
	Set(key string, value any, opts ...types.SetOption) error

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		-------------------
		1. If the key exists and is NOT expired:
		   - Return the value (cache hit)
		   - Record the access for the eviction policy

		2. If the key does NOT exist or is expired:
		   - Return false (cache miss)
		   - An expired entry is removed on the spot
	*/
	Get(key string) (any, bool)

	/*
		Remember is Get with a fallback: on a miss it calls load once per key,
		even if many goroutines miss at the same time, and caches the result.
		Loader errors are returned as is and nothing is cached.
	*/
	Remember(ctx context.Context, key string, load types.Loader, opts ...types.SetOption) (any, error)

	/*
		Del removes a key from the cache immediately.

		This operation is idempotent:
		- Removing a non-existing key is safe and returns false
	*/
	Del(key string) bool

	/*
		TTL returns the remaining time-to-live for a key.

		RETURN VALUES:
		--------------
		TTLRemaining : Remaining > 0 before expiration
		TTLInfinite  : Key exists but has no TTL
		TTLAbsent    : Key does not exist or is already expired
	*/
	TTL(key string) types.TTL

	/*
		Keys lists live keys, sorted. An empty pattern matches everything,
		a pattern with glob characters (* ? [) is a Redis style glob whose *
		also crosses "/", anything else is a substring match. Keys never
		removes entries.
	*/
	Keys(pattern string) []string

	/*
		InvalidateByTag removes every entry carrying tag and returns how many
		were removed. Unknown tags remove nothing.
	*/
	InvalidateByTag(tag string) int

	// Info returns a snapshot of counters, live totals and configuration.
	Info() stats.Info

	// FlushAll removes every entry. Cumulative counters are kept.
	FlushAll()

	/*
		Close stops the background sweep.

		The cache holds no external resources, so Close is only needed when
		a sweep interval is configured. It is safe to call more than once.
	*/
	Close()
}
