package types

import "time"

// CacheEntry is one cached key/value record plus the metadata the
// eviction policies and expiry rules read.
// All fields are guarded by the owning cache's lock.
type CacheEntry struct {
	Key            string
	Value          any
	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpireAt       time.Time // zero => no TTL

	// TTL is the duration ExpireAt was derived from. Sliding expiry uses it
	// to push ExpireAt forward on access.
	TTL time.Duration

	AccessCount uint64
	SizeBytes   int64

	// Tags are fixed at insertion time. Re-setting the key replaces them.
	Tags []string
}

// HasTTL reports whether the entry can expire.
func (e *CacheEntry) HasTTL() bool {
	return !e.ExpireAt.IsZero()
}

// Expired reports whether the entry's TTL has passed at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return e.HasTTL() && !now.Before(e.ExpireAt)
}
